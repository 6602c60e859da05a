package config

import "time"

type App struct {
	Env      string `json:"env" yaml:"env"`
	Debug    bool   `json:"debug" yaml:"debug"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

// Location 提醒任务触发使用的时区，未配置时为 UTC
func (a *App) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
