package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "warn",
		},
	}
}
