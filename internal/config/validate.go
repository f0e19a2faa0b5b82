package config

func ValidateForRun(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return ErrJWTSecretMissing
	}
	return cfg.Redis.Validate()
}
