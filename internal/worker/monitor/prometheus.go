package monitor

import "github.com/prometheus/client_golang/prometheus"

var (
	// KafkaMessagesReceived Kafka 消费相关
	KafkaMessagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_received_total",
			Help: "Total number of messages received from Kafka.",
		},
		[]string{"topic"},
	)
	EventsFiltered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_filtered_total",
			Help: "Total number of events filtered out before dispatch.",
		},
		[]string{"reason"},
	)
	BatchProcessDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "event_batch_process_duration_seconds",
			Help:    "Time taken to process one event batch end to end.",
			Buckets: []float64{0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
	)

	// EventsDecoded 解码相关
	EventsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_decoded_total",
			Help: "Total number of events decoded into records, by protocol.",
		},
		[]string{"protocol"},
	)
	DecodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_decode_failures_total",
			Help: "Total number of decoder failures, by protocol.",
		},
		[]string{"protocol"},
	)
	PriceTierHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_resolution_tier_hits_total",
			Help: "Price resolutions served by each tier.",
		},
		[]string{"tier"},
	)
	PriceFeedPoints = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "price_feed_points_total",
			Help: "Total number of aggregated price points persisted.",
		},
	)
	IndexedCheckpoint = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "indexed_checkpoint",
			Help: "Latest checkpoint whose batch has been fully processed.",
		},
	)

	// AsyncWriterMessagesQueued AsyncWriter 指标
	AsyncWriterMessagesQueued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_writer_messages_queued_total",
			Help: "Total number of messages queued to async writer.",
		},
		[]string{"writer_id"},
	)
	AsyncWriterMessagesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_writer_messages_dropped_total",
			Help: "Total number of messages dropped due to full queue.",
		},
		[]string{"writer_id"},
	)
	AsyncWriterBatchSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "async_writer_batch_size",
			Help:    "Number of items in each batch submitted to the writer.",
			Buckets: []float64{10, 50, 100, 200, 500, 1000},
		},
		[]string{"writer_id"},
	)
	AsyncWriterFlushCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_writer_flush_count_total",
			Help: "Total number of batch flushes triggered.",
		},
		[]string{"writer_id"},
	)
	AsyncWriterFlushDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "async_writer_flush_duration_seconds",
			Help:    "Time taken to flush a batch.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"writer_id"},
	)
	AsyncWriterItemsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_writer_items_written_total",
			Help: "Total number of items successfully written by the async writer.",
		},
		[]string{"writer_id"},
	)

	// PositionRequests 仓位聚合指标
	PositionRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "position_requests_total",
			Help: "Total number of per-protocol position calculations.",
		},
		[]string{"protocol", "status"},
	)
	PositionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "position_calc_duration_seconds",
			Help:    "Time taken by each protocol position calculator.",
			Buckets: []float64{0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"protocol"},
	)
)

func init() {
	prometheus.MustRegister(
		// kafka指标
		KafkaMessagesReceived,
		EventsFiltered,
		BatchProcessDuration,

		// 解码与定价指标
		EventsDecoded,
		DecodeFailures,
		PriceTierHits,
		PriceFeedPoints,
		IndexedCheckpoint,

		// async 写入指标
		AsyncWriterMessagesQueued,
		AsyncWriterMessagesDropped,
		AsyncWriterBatchSize,
		AsyncWriterFlushCount,
		AsyncWriterFlushDuration,
		AsyncWriterItemsWritten,

		// 仓位指标
		PositionRequests,
		PositionDuration,
	)
}
