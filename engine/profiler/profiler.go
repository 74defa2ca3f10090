package profiler

import (
	"log"
	"runtime"
	"sort"
	"strings"
	"time"
)

// Profiler tracks frame rate, memory statistics and named per-phase CPU
// timings for performance monitoring. Outputs stats to the log at a
// configurable interval.
//
// Phase recording and Tick must happen on the same goroutine; the batch
// collector records its phases from the orchestrating goroutine only.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	phaseTotals map[string]time.Duration
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		frameCount:     0,
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		phaseTotals:    make(map[string]time.Duration),
	}
}

// BeginPhase starts timing a named phase and returns the function that stops
// it. Durations accumulate across frames until the next logging tick.
//
// Parameters:
//   - name: the phase label reported in the log line
//
// Returns:
//   - func(): stops the phase timer when called
func (p *Profiler) BeginPhase(name string) func() {
	start := time.Now()
	return func() {
		p.phaseTotals[name] += time.Since(start)
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, per-phase CPU time, heap usage, allocation rate,
// GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed >= p.updateInterval {
		fps := float64(p.frameCount) / elapsed.Seconds()

		runtime.ReadMemStats(&p.memStats)
		// Alloc: Bytes of allocated heap objects (live memory)
		// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
		// Sys: Total bytes of memory obtained from the OS (actual process footprint)
		allocMB := float64(p.memStats.Alloc) / 1024 / 1024
		sysMB := float64(p.memStats.Sys) / 1024 / 1024

		// Calculate allocation rate (MB/sec)
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

		// Calculate GC pause stats (last pause and max recent pause)
		gcCount := p.memStats.NumGC
		var lastPauseUs, maxPauseUs uint64
		if gcCount > 0 {
			// PauseNs is a circular buffer of last 256 GC pauses
			lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

			// Find max pause since last tick
			startIdx := p.lastGCCount
			if gcCount-startIdx > 256 {
				startIdx = gcCount - 256
			}
			for i := startIdx; i < gcCount; i++ {
				pause := p.memStats.PauseNs[i%256] / 1000
				if pause > maxPauseUs {
					maxPauseUs = pause
				}
			}
		}

		log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB%s",
			fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB, p.phaseSummary(p.frameCount))

		p.frameCount = 0
		p.lastTime = currentTime
		p.lastGCCount = gcCount
		p.lastTotalAlloc = p.memStats.TotalAlloc
		for name := range p.phaseTotals {
			delete(p.phaseTotals, name)
		}
		return true
	}

	return false
}

// phaseSummary formats the accumulated phase timings as mean time per frame,
// sorted by name for stable output. Empty when no phases were recorded.
func (p *Profiler) phaseSummary(frames int) string {
	if len(p.phaseTotals) == 0 || frames == 0 {
		return ""
	}
	names := make([]string, 0, len(p.phaseTotals))
	for name := range p.phaseTotals {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(" | Phases:")
	for _, name := range names {
		mean := p.phaseTotals[name] / time.Duration(frames)
		sb.WriteString(" ")
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(mean.String())
	}
	return sb.String()
}
