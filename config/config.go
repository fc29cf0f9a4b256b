package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging       LoggingConfig       `yaml:"logging"`
	Server        ServerConfig        `yaml:"server"`
	Mongo         MongoConfig         `yaml:"mongo"`
	GeminiModel   string              `yaml:"gemini_model"`
	GeminiApiKey  string              `yaml:"-"`
	Analysis      AnalysisConfig      `yaml:"analysis"`
	AnalysisQuota AnalysisQuotaConfig `yaml:"analysis_quota"`
	Community     CommunityConfig     `yaml:"community"`
	SMTP          SMTPConfig          `yaml:"smtp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type MongoConfig struct {
	URI    string `yaml:"uri"`
	DBName string `yaml:"db_name"`
}

// AnalysisConfig 는 콘텐츠 자동 분석 파이프라인의 동작 파라미터를 정의한다.
type AnalysisConfig struct {
	// BodyPromptLimit 는 프롬프트에 포함할 본문 최대 길이(rune)이다.
	BodyPromptLimit int `yaml:"body_prompt_limit"`

	// TriggerDelayMs 는 콘텐츠 생성 후 백그라운드 분석을 시작하기까지의 지연이다.
	TriggerDelayMs int `yaml:"trigger_delay_ms"`

	// BatchSize / BatchDelayMs 는 배치 분석 시 동시 처리 개수와 그룹 간 대기 시간이다.
	BatchSize    int `yaml:"batch_size"`
	BatchDelayMs int `yaml:"batch_delay_ms"`

	// UserRefreshDays 는 유저 관심사 분석을 재생성하기 전 유지하는 기간(일)이다.
	UserRefreshDays int `yaml:"user_refresh_days"`
}

// AnalysisQuotaConfig 는 분석용 LLM 호출에 대한 속도/일일 한도를 정의한다.
type AnalysisQuotaConfig struct {
	// RequestsPerMinute 는 분석용 LLM 호출에 대한 분당 최대 요청 수이다.
	// 0 이하면 제한 없음으로 간주한다.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay 는 분석용 LLM 호출에 대한 일일 최대 요청 수이다.
	// 0 이하면 제한 없음으로 간주한다.
	RequestsPerDay int `yaml:"requests_per_day"`
}

// CommunityConfig 는 커뮤니티 분석 생성에 대한 설정이다.
type CommunityConfig struct {
	// ScheduleEnabled 가 false 면 on-demand(POST) 생성만 가능하다.
	ScheduleEnabled bool `yaml:"schedule_enabled"`

	// SampleSize 는 LLM 프롬프트에 포함할 최근 게시물 샘플 개수이다.
	SampleSize int `yaml:"sample_size"`
}

type SMTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	From string `yaml:"from"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	// 비밀 값은 yaml 이 아니라 환경변수에서만 읽는다.
	c.GeminiApiKey = os.Getenv("GEMINI_API_KEY")
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func applyDefaults(c *AppConfig) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.0-flash"
	}
	if c.Analysis.BodyPromptLimit <= 0 {
		c.Analysis.BodyPromptLimit = 3000
	}
	if c.Analysis.TriggerDelayMs <= 0 {
		c.Analysis.TriggerDelayMs = 100
	}
	if c.Analysis.BatchSize <= 0 {
		c.Analysis.BatchSize = 5
	}
	if c.Analysis.BatchDelayMs <= 0 {
		c.Analysis.BatchDelayMs = 2000
	}
	if c.Analysis.UserRefreshDays <= 0 {
		c.Analysis.UserRefreshDays = 7
	}
	if c.Community.SampleSize <= 0 {
		c.Community.SampleSize = 20
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
