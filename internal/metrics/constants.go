package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Roll metric names
const (
	MetricNameRollsTotal       = "rolls_total"
	MetricNameRollDrops        = "roll_drops_total"
	MetricNamePityTriggered    = "pity_triggered_total"
	MetricNameCoinsEarned      = "coins_earned_total"
	MetricNameLootItemsSold    = "loot_items_sold_total"
	MetricNameScriptedOverride = "scripted_overrides_armed_total"
)

// Sub-game metric names
const (
	MetricNameSubGameActions  = "subgame_actions_total"
	MetricNameSubGameDrops    = "subgame_drops_total"
	MetricNameBonusCredits    = "bonus_credits_found_total"
	MetricNameSubGamesRunning = "subgames_auto_running"
)

// Persistence metric names
const (
	MetricNameSavesTotal  = "saves_total"
	MetricNameSaveErrors  = "save_errors_total"
	MetricNameSaveDropped = "saves_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Roll metric help text
const (
	HelpTextRollsTotal       = "Total number of primary rolls by mode"
	HelpTextRollDrops        = "Primary roll results by rarity"
	HelpTextPityTriggered    = "Number of rolls resolved with pity luck"
	HelpTextCoinsEarned      = "Coins credited from selling loot"
	HelpTextLootItemsSold    = "Loot units sold"
	HelpTextScriptedOverride = "Scripted drop overrides armed through the admin API"
)

// Sub-game metric help text
const (
	HelpTextSubGameActions  = "Sub-game actions performed by trigger"
	HelpTextSubGameDrops    = "Resource drops produced by sub-games"
	HelpTextBonusCredits    = "Bonus gacha credits found during sub-game actions"
	HelpTextSubGamesRunning = "Sub-game loops currently in AUTO"
)

// Persistence metric help text
const (
	HelpTextSavesTotal  = "Progress snapshots written to the store"
	HelpTextSaveErrors  = "Progress snapshots that failed to persist"
	HelpTextSaveDropped = "Progress snapshots superseded before being written"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelMode    = "mode"
	LabelRarity  = "rarity"
	LabelSubGame = "subgame"
	LabelTrigger = "trigger"
)

// Label values
const (
	ModeNormal = "normal"
	ModeMoon   = "moon"

	TriggerManual = "manual"
	TriggerTimer  = "timer"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
