// Package profiling writes pprof CPU and heap profiles of a ricat run.
package profiling

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/ricat/ricat/internal/io/dlog"
)

const timestampLayout = "20060102_150405"

// Profiler manages CPU and memory profiling
type Profiler struct {
	cpuProfile  *os.File
	memProfile  string
	profileDir  string
	commandName string
	enabled     bool
	log         *dlog.Logger
}

// Config holds profiling configuration
type Config struct {
	// Enable CPU profiling
	CPUProfile bool
	// Enable memory profiling
	MemProfile bool
	// Directory to store profiles
	ProfileDir string
	// Command name for profile naming
	CommandName string
	// Logger, the global logger if nil
	Logger *dlog.Logger
}

// NewProfiler creates a new profiler instance. Profiling failures are
// logged and never fail the run.
func NewProfiler(cfg Config) *Profiler {
	if !cfg.CPUProfile && !cfg.MemProfile {
		return &Profiler{enabled: false}
	}

	log := cfg.Logger
	if log == nil {
		log = dlog.Get()
	}
	p := &Profiler{
		profileDir:  cfg.ProfileDir,
		commandName: cfg.CommandName,
		enabled:     true,
		log:         log.WithComponent("profiling"),
	}

	if p.profileDir == "" {
		p.profileDir = "profiles"
	}
	if err := os.MkdirAll(p.profileDir, 0755); err != nil {
		p.log.Warn("Failed to create profile directory", dlog.Fields(dlog.FieldError, err.Error()))
		p.enabled = false
		return p
	}

	if cfg.CPUProfile {
		p.startCPUProfile()
	}
	if cfg.MemProfile {
		p.memProfile = p.path("mem")
	}

	return p
}

func (p *Profiler) path(kind string) string {
	return filepath.Join(p.profileDir,
		fmt.Sprintf("%s_%s_%s.prof", p.commandName, kind, time.Now().Format(timestampLayout)))
}

func (p *Profiler) startCPUProfile() {
	cpuProfilePath := p.path("cpu")

	f, err := os.Create(cpuProfilePath)
	if err != nil {
		p.log.Warn("Failed to create CPU profile file", dlog.Fields(dlog.FieldError, err.Error()))
		return
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		p.log.Warn("Failed to start CPU profile", dlog.Fields(dlog.FieldError, err.Error()))
		f.Close()
		return
	}

	p.cpuProfile = f
	p.log.Info("Started CPU profiling", dlog.Fields("path", cpuProfilePath))
}

// Stop stops all profiling and writes profiles to disk
func (p *Profiler) Stop() {
	if !p.enabled {
		return
	}

	if p.cpuProfile != nil {
		pprof.StopCPUProfile()
		p.cpuProfile.Close()
		p.cpuProfile = nil
		p.log.Info("Stopped CPU profiling")
	}

	if p.memProfile != "" {
		p.writeMemProfile()
	}
}

func (p *Profiler) writeHeap(path string) bool {
	f, err := os.Create(path)
	if err != nil {
		p.log.Warn("Failed to create memory profile file", dlog.Fields(dlog.FieldError, err.Error()))
		return false
	}
	defer f.Close()

	// Collect garbage first for an accurate in-use figure
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		p.log.Warn("Failed to write memory profile", dlog.Fields(dlog.FieldError, err.Error()))
		return false
	}
	return true
}

func (p *Profiler) writeMemProfile() {
	if !p.writeHeap(p.memProfile) {
		return
	}
	p.log.Info("Wrote memory profile", dlog.Fields("path", p.memProfile))

	allocProfilePath := p.path("alloc")
	allocFile, err := os.Create(allocProfilePath)
	if err != nil {
		p.log.Warn("Failed to create allocation profile file", dlog.Fields(dlog.FieldError, err.Error()))
		return
	}
	defer allocFile.Close()

	if err := pprof.Lookup("allocs").WriteTo(allocFile, 0); err != nil {
		p.log.Warn("Failed to write allocation profile", dlog.Fields(dlog.FieldError, err.Error()))
		return
	}
	p.log.Info("Wrote allocation profile", dlog.Fields("path", allocProfilePath))
}

// Snapshot takes a memory snapshot at any point during execution
func (p *Profiler) Snapshot(label string) {
	if !p.enabled || p.memProfile == "" {
		return
	}

	snapshotPath := p.path("snapshot_" + label)
	if p.writeHeap(snapshotPath) {
		p.log.Info("Wrote memory snapshot", dlog.Fields("path", snapshotPath, "label", label))
	}
}

// ProfileMetrics captures and returns current runtime metrics
type ProfileMetrics struct {
	// Memory statistics
	Alloc        uint64    // Bytes allocated and still in use
	TotalAlloc   uint64    // Bytes allocated (even if freed)
	Sys          uint64    // Bytes obtained from system
	NumGC        uint32    // Number of completed GC cycles
	LastGC       time.Time // Time of last GC
	PauseTotalNs uint64    // Total GC pause time in nanoseconds

	NumGoroutine int
	NumCPU       int
}

// GetMetrics returns current runtime metrics
func GetMetrics() ProfileMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return ProfileMetrics{
		Alloc:        m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		LastGC:       time.Unix(0, int64(m.LastGC)),
		PauseTotalNs: m.PauseTotalNs,
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
	}
}

// LogMetrics logs current runtime metrics
func (p *Profiler) LogMetrics(label string) {
	if !p.enabled {
		return
	}

	metrics := GetMetrics()
	p.log.Info("Profile metrics", dlog.Fields(
		"label", label,
		"allocMB", float64(metrics.Alloc)/1024/1024,
		"totalAllocMB", float64(metrics.TotalAlloc)/1024/1024,
		"sysMB", float64(metrics.Sys)/1024/1024,
		"numGC", metrics.NumGC,
		"gcPauseMs", float64(metrics.PauseTotalNs)/1e6,
		"goroutines", metrics.NumGoroutine,
	))
}
