package jwtmw

// EnvKeyJWTSecret names the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"
