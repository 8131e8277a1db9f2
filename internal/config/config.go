// config.go
package config

import "os"

type Config struct {
	MongoURI    string
	MongoDBName string
	JWTSecret   string
	RabbitURL   string
	Port        string

	// Directorios donde se guardan los códigos QR generados
	QRParcelDir    string
	QRContainerDir string

	// Vocabularios para la generación de IDs de staff.
	// Son configuración inyectada, no constantes (pueden crecer).
	RolePrefixes map[string]string
	BranchCodes  map[string]string
	HomeBranch   string
}

func Load() *Config {
	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "epost_db"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret"),
		RabbitURL:      getEnv("RABBIT_URL", ""),
		Port:           getEnv("PORT", "5000"),
		QRParcelDir:    getEnv("QR_PARCEL_DIR", "qrcodes/parcels"),
		QRContainerDir: getEnv("QR_CONTAINER_DIR", "qrcodes/containers"),
		RolePrefixes: map[string]string{
			"staff":     "STF",
			"admin":     "ADM",
			"transport": "TRP",
		},
		BranchCodes: map[string]string{
			"mumbai":  "MUM",
			"delhi":   "DEL",
			"chennai": "CHN",
			"kolkata": "KOL",
		},
		HomeBranch: getEnv("HOME_BRANCH", "mumbai"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
