package cmd

// Config carries the raw environment configuration. Values are kept as
// strings and parsed where they are consumed, so a bad value fails at
// startup with a pointed error.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr string

	PaymentAPIURL string
	PaymentAPIKey string
	AuthAPIURL    string

	// Tariffs, all in integer cents except the percentage.
	PricePerKmCents       string
	DailyStorageRateCents string
	LateFeePerDayCents    string
	StorageSharePercent   string

	// Default warehouse site.
	WarehouseLat     string
	WarehouseLon     string
	WarehouseAddress string
}
