package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Roll Metrics
var (
	RollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRollsTotal,
			Help: HelpTextRollsTotal,
		},
		[]string{LabelMode},
	)

	RollDrops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRollDrops,
			Help: HelpTextRollDrops,
		},
		[]string{LabelRarity},
	)

	PityTriggered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePityTriggered,
			Help: HelpTextPityTriggered,
		},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
	)

	LootItemsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLootItemsSold,
			Help: HelpTextLootItemsSold,
		},
	)

	ScriptedOverrides = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameScriptedOverride,
			Help: HelpTextScriptedOverride,
		},
	)
)

// Sub-game Metrics
var (
	SubGameActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSubGameActions,
			Help: HelpTextSubGameActions,
		},
		[]string{LabelSubGame, LabelTrigger},
	)

	SubGameDrops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSubGameDrops,
			Help: HelpTextSubGameDrops,
		},
		[]string{LabelSubGame},
	)

	BonusCreditsFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBonusCredits,
			Help: HelpTextBonusCredits,
		},
		[]string{LabelSubGame},
	)

	SubGamesRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSubGamesRunning,
			Help: HelpTextSubGamesRunning,
		},
	)
)

// Persistence Metrics
var (
	SavesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSavesTotal,
			Help: HelpTextSavesTotal,
		},
	)

	SaveErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSaveErrors,
			Help: HelpTextSaveErrors,
		},
	)

	SavesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSaveDropped,
			Help: HelpTextSaveDropped,
		},
	)
)
