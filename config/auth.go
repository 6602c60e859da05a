package config

const (
	AuthModeRemote = "remote" // 由用户服务解析 token
	AuthModeJwt    = "jwt"    // 本地校验 HS256 token
)

type Auth struct {
	Mode string `json:"mode" yaml:"mode"`
}
