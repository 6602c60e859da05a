package config

import "fmt"

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// MySQL 数据库配置
// driver 为 sqlite 时 database 为数据库文件路径，用于本地开发
type MySQL struct {
	Driver   string   `json:"driver" yaml:"driver"`
	Host     string   `json:"host" yaml:"host"`
	Port     int      `json:"port" yaml:"port"`
	User     string   `json:"user" yaml:"user"`
	Password string   `json:"password" yaml:"password"`
	Database string   `json:"database" yaml:"database"`
	Charset  string   `json:"charset" yaml:"charset"`
	Replicas []string `json:"replicas" yaml:"replicas"` // 只读从库 DSN
}

func (m *MySQL) Dsn() string {
	charset := m.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=UTC",
		m.User, m.Password, m.Host, m.Port, m.Database, charset)
}
