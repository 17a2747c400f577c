// Package doctor inspects lock files and reports on their health.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fslease-project/fslease/pkg/model"
	"github.com/fslease-project/fslease/pkg/pathutil"
	"github.com/fslease-project/fslease/pkg/ticks"
)

// suspiciousHorizon flags release instants implausibly far out; they usually
// mean a corrupted tick count rather than a deliberate claim.
const suspiciousHorizon = 10 * 365 * 24 * time.Hour

// Finding represents a detected issue.
type Finding struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Path        string `json:"path,omitempty"`
}

// Result contains doctor check results.
type Result struct {
	Healthy  bool           `json:"healthy"`
	Info     model.LockInfo `json:"info"`
	Findings []Finding      `json:"findings"`
}

// Doctor performs lock-file health checks for one target.
type Doctor struct {
	target string
}

// NewDoctor creates a new doctor for the given target resource.
func NewDoctor(target string) *Doctor {
	return &Doctor{target: target}
}

// Inspect reports what the lock file currently says about the target.
func Inspect(target string) model.LockInfo {
	info := model.LockInfo{
		Target:   target,
		LockPath: pathutil.LockPath(target),
		State:    model.LockStateFree,
	}
	data, err := os.ReadFile(info.LockPath)
	if err != nil {
		return info
	}
	n, err := ticks.Parse(string(data))
	if err != nil {
		// Unreadable content counts as expired: the next acquirer overwrites it.
		info.State = model.LockStateExpired
		return info
	}
	info.Ticks = n
	info.Release = ticks.ToTime(n)
	if info.Release.After(time.Now().UTC()) {
		info.State = model.LockStateHeld
	} else {
		info.State = model.LockStateExpired
	}
	return info
}

// Check runs all diagnostic checks.
func (d *Doctor) Check() (*Result, error) {
	result := &Result{Healthy: true}

	if err := pathutil.ValidateTarget(d.target); err != nil {
		result.Findings = append(result.Findings, Finding{
			Category:    "target",
			Description: err.Error(),
			Severity:    "critical",
			Path:        d.target,
		})
		result.Healthy = false
		return result, nil
	}

	result.Info = Inspect(d.target)
	d.checkRecord(result)
	d.checkDirectory(result)

	return result, nil
}

func (d *Doctor) checkRecord(result *Result) {
	lockPath := result.Info.LockPath
	data, err := os.ReadFile(lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return // free is healthy
		}
		result.Findings = append(result.Findings, Finding{
			Category:    "record",
			Description: fmt.Sprintf("lock file unreadable: %v", err),
			Severity:    "error",
			Path:        lockPath,
		})
		result.Healthy = false
		return
	}

	n, err := ticks.Parse(string(data))
	if err != nil {
		result.Findings = append(result.Findings, Finding{
			Category:    "record",
			Description: fmt.Sprintf("lock file content is not a tick count (%d bytes); next acquirer will overwrite it", len(data)),
			Severity:    "warning",
			Path:        lockPath,
		})
		return
	}

	now := time.Now().UTC()
	release := ticks.ToTime(n)
	switch {
	case !release.After(now):
		result.Findings = append(result.Findings, Finding{
			Category:    "record",
			Description: fmt.Sprintf("expired lock left behind (release %s)", release.Format(time.RFC3339)),
			Severity:    "warning",
			Path:        lockPath,
		})
	case release.After(now.Add(suspiciousHorizon)):
		result.Findings = append(result.Findings, Finding{
			Category:    "record",
			Description: fmt.Sprintf("release instant implausibly far in the future (%s)", release.Format(time.RFC3339)),
			Severity:    "warning",
			Path:        lockPath,
		})
	}
}

func (d *Doctor) checkDirectory(result *Result) {
	dir := filepath.Dir(result.Info.LockPath)
	probe, err := os.CreateTemp(dir, ".fslease-doctor-*")
	if err != nil {
		result.Findings = append(result.Findings, Finding{
			Category:    "directory",
			Description: fmt.Sprintf("cannot create files next to the target: %v", err),
			Severity:    "error",
			Path:        dir,
		})
		result.Healthy = false
		return
	}
	probe.Close()
	os.Remove(probe.Name())
}
