package constants

const (
	AppName            = "carbonquest"
	Version            = "v0.2.0"
	DefaultConfigPath  = "~/.config/carbonquest/carbonquest.db"
	DefaultKeyringUser = "database-connection"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Notify constants
	NotifyLockfileName     = "carbonquest-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.carbonquest.tray"
)

// Frequency represents how often a habit repeats
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Category groups habits for display and filtering
type Category string

const (
	CategoryTransport Category = "transport"
	CategoryFood      Category = "food"
	CategoryRecycling Category = "recycling"
	CategoryEnergy    Category = "energy"
	CategoryWater     Category = "water"
	CategoryOther     Category = "other"
)

// Frequencies lists all valid habit frequencies.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// Categories lists all valid habit categories.
var Categories = []Category{
	CategoryTransport, CategoryFood, CategoryRecycling,
	CategoryEnergy, CategoryWater, CategoryOther,
}
