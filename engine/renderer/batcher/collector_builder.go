package batcher

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/strata-go/engine/camera"
	"github.com/Carmen-Shannon/strata-go/engine/profiler"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/pipeline"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Default parallelism thresholds: phases with fewer items than their
// threshold run inline to avoid scheduling overhead on small frames.
const (
	defaultDrawableWorkThreshold      = 64
	defaultLitGeometriesWorkThreshold = 8
	defaultBatchWorkThreshold         = 128
)

// CollectorBuilderOption is a function that configures a Collector during construction.
type CollectorBuilderOption func(*sceneBatchCollector)

// NewSceneBatchCollector creates a Collector. The state builder factory is
// required: it is invoked once per worker slot at every InitializeFrame to
// produce the per-worker pipeline state builders, and would normally close
// over a shared shader resolver and pipeline state cache.
//
// Parameters:
//   - stateBuilderFactory: produces a pipeline state builder for a camera (must not be nil)
//   - opts: variadic list of CollectorBuilderOption functions to configure the collector
//
// Returns:
//   - Collector: a new Collector instance
func NewSceneBatchCollector(stateBuilderFactory func(cam camera.Camera) pipeline.StateBuilder, opts ...CollectorBuilderOption) Collector {
	if stateBuilderFactory == nil {
		panic("batcher: NewSceneBatchCollector requires a non-nil state builder factory")
	}

	c := &sceneBatchCollector{
		state:                      stateIdle,
		quality:                    2,
		maxPixelLights:             4,
		maxVertexLights:            4,
		workerCount:                max(runtime.NumCPU()-1, 1),
		drawableWorkThreshold:      defaultDrawableWorkThreshold,
		litGeometriesWorkThreshold: defaultLitGeometriesWorkThreshold,
		batchWorkThreshold:         defaultBatchWorkThreshold,
		querier:                    NewBoundsQuerier(),
		processor:                  NewLightProcessor(),
		stateBuilderFactory:        stateBuilderFactory,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Initialize the worker pool after options so WithWorkerCount can override
	// the default. Queue size of 256 accommodates the chunk fan-out of every
	// phase with headroom.
	c.pool = worker.NewDynamicWorkerPool(c.workerCount, 256, 1*time.Second)

	return c
}

// WithMaterialQuality is an option builder that sets the material quality
// tier used for technique resolution.
//
// Parameters:
//   - quality: the quality tier; techniques above it are skipped
//
// Returns:
//   - CollectorBuilderOption: a function that applies the quality option to a collector
func WithMaterialQuality(quality int) CollectorBuilderOption {
	return func(c *sceneBatchCollector) {
		c.quality = quality
	}
}

// WithLightBudget is an option builder that sets the per-drawable light
// budget: the maximum per-pixel and per-vertex light counts.
//
// Parameters:
//   - maxPixelLights: per-pixel light slots per drawable
//   - maxVertexLights: per-vertex light slots per drawable
//
// Returns:
//   - CollectorBuilderOption: a function that applies the budget option to a collector
func WithLightBudget(maxPixelLights, maxVertexLights int) CollectorBuilderOption {
	return func(c *sceneBatchCollector) {
		c.maxPixelLights = maxPixelLights
		c.maxVertexLights = maxVertexLights
	}
}

// WithWorkerCount is an option builder that sets the worker pool size used by
// the parallel collection phases. A count of 1 disables fan-out entirely.
//
// Parameters:
//   - workers: the worker count, clamped to at least 1
//
// Returns:
//   - CollectorBuilderOption: a function that applies the worker option to a collector
func WithWorkerCount(workers int) CollectorBuilderOption {
	return func(c *sceneBatchCollector) {
		c.workerCount = max(workers, 1)
	}
}

// WithWorkThresholds is an option builder that sets the minimum item counts
// below which the drawable, light and batch phases run inline instead of
// fanning out.
//
// Parameters:
//   - drawables: minimum drawable count for parallel source-batch collection
//   - litGeometries: minimum light count for parallel lit-geometry queries
//   - batches: minimum batch count for parallel state resolution
//
// Returns:
//   - CollectorBuilderOption: a function that applies the threshold option to a collector
func WithWorkThresholds(drawables, litGeometries, batches int) CollectorBuilderOption {
	return func(c *sceneBatchCollector) {
		c.drawableWorkThreshold = drawables
		c.litGeometriesWorkThreshold = litGeometries
		c.batchWorkThreshold = batches
	}
}

// WithGeometryQuerier is an option builder that replaces the default
// brute-force lit-geometry querier, e.g. with one backed by a spatial index.
//
// Parameters:
//   - querier: the lit-geometry querier (ignored when nil)
//
// Returns:
//   - CollectorBuilderOption: a function that applies the querier option to a collector
func WithGeometryQuerier(querier GeometryQuerier) CollectorBuilderOption {
	return func(c *sceneBatchCollector) {
		if querier != nil {
			c.querier = querier
		}
	}
}

// WithLightProcessor is an option builder that replaces the persistent
// per-light parameter cache, letting multiple collectors share one cache.
//
// Parameters:
//   - processor: the light parameter cache (ignored when nil)
//
// Returns:
//   - CollectorBuilderOption: a function that applies the processor option to a collector
func WithLightProcessor(processor LightProcessor) CollectorBuilderOption {
	return func(c *sceneBatchCollector) {
		if processor != nil {
			c.processor = processor
		}
	}
}

// WithProfiler is an option builder that attaches a profiler recording the
// collector's per-phase CPU timings.
//
// Parameters:
//   - prof: the profiler to record into
//
// Returns:
//   - CollectorBuilderOption: a function that applies the profiler option to a collector
func WithProfiler(prof *profiler.Profiler) CollectorBuilderOption {
	return func(c *sceneBatchCollector) {
		c.prof = prof
	}
}
