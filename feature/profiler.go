package feature

import (
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// TickProfiler tracks host update-tick throughput and Go runtime memory
// statistics for performance monitoring. Logs a structured summary at a
// configurable interval rather than every tick.
type TickProfiler struct {
	tickCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	log *logrus.Entry
}

// NewTickProfiler creates a TickProfiler logging through log. Update
// interval defaults to one second of wall-clock time between summaries.
func NewTickProfiler(log *logrus.Entry) *TickProfiler {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &TickProfiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		log:            log.WithField("component", "tickProfiler"),
	}
}

// Tick should be called once per HostObject.Update call. Logs tick rate and
// memory statistics once updateInterval of wall-clock time has elapsed since
// the last summary. Returns whether a summary was logged this call.
func (p *TickProfiler) Tick() bool {
	p.tickCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	tps := float64(p.tickCount) / elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
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

	p.log.WithFields(logrus.Fields{
		"ticksPerSec": tps,
		"heapMB":      allocMB,
		"allocRateMB": allocRateMB,
		"gcCount":     gcCount,
		"gcLastUs":    lastPauseUs,
		"gcMaxUs":     maxPauseUs,
		"sysMB":       sysMB,
	}).Info("tick profile")

	p.tickCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
