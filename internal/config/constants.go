package config

const (
	// EnvProduction is the ENVIRONMENT value for production deploys
	EnvProduction = "prod"

	// ExampleAPIKey is the placeholder shipped in .env.example
	ExampleAPIKey = "generate_with_openssl_rand_hex_32"
)
