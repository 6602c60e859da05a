package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App         *App            `json:"app" yaml:"app"`
	Server      *Server         `json:"server" yaml:"server"`
	MySQL       *MySQL          `json:"mysql" yaml:"mysql"`
	Redis       *Redis          `json:"redis" yaml:"redis"`
	Jwt         *Jwt            `json:"jwt" yaml:"jwt"`
	Auth        *Auth           `json:"auth" yaml:"auth"`
	UserService *UserService    `json:"user_service" yaml:"user_service"`
	Reminder    *Reminder       `json:"reminder" yaml:"reminder"`
	RocketMQ    *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}

	return conf
}

// Parse 解析 yaml 内容并补齐默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.fill()
	return &conf, nil
}

func (c *Config) fill() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.MySQL.Driver == "" {
		c.MySQL.Driver = DriverMySQL
	}
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Auth == nil {
		c.Auth = &Auth{}
	}
	if c.Auth.Mode == "" {
		c.Auth.Mode = AuthModeRemote
	}
	if c.UserService == nil {
		c.UserService = &UserService{}
	}
	if c.UserService.TimeoutMs == 0 {
		c.UserService.TimeoutMs = 5000
	}
	if c.Reminder == nil {
		c.Reminder = &Reminder{}
	}
	if c.Reminder.Topic == "" {
		c.Reminder.Topic = "NOTE_REMINDER"
	}
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
