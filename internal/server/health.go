package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

func (s *Server) now() time.Time {
	return time.Now().UTC()
}

func gigabytes(b uint64) string {
	return fmt.Sprintf("%.2f GB", float64(b)/1024/1024/1024)
}

// healthHandler reports the store status together with host metrics.
// Metrics that cannot be read are left out.
func (s *Server) healthHandler(c echo.Context) error {
	ctx := c.Request().Context()
	dbHealth := s.db.Health()

	status := "online"
	if dbHealth["status"] != "up" {
		status = "degraded"
	}

	res := map[string]interface{}{
		"status":   status,
		"database": dbHealth,
		"runtime": map[string]interface{}{
			"uptime":     time.Since(s.startedAt).Round(time.Second).String(),
			"start_time": s.startedAt.UTC().Format(time.RFC3339),
		},
	}

	if hInfo, err := host.InfoWithContext(ctx); err == nil {
		rt := res["runtime"].(map[string]interface{})
		rt["os"] = hInfo.OS
		rt["platform"] = hInfo.Platform
		rt["arch"] = hInfo.KernelArch
		rt["hostname"] = hInfo.Hostname
	}

	// Interval 0 compares against the previous call instead of blocking.
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		cores, _ := cpu.CountsWithContext(ctx, true)
		res["cpu"] = map[string]interface{}{
			"usage_percent": fmt.Sprintf("%.2f%%", pct[0]),
			"cores":         cores,
		}
	}

	if v, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		res["memory"] = map[string]interface{}{
			"total_gb":     gigabytes(v.Total),
			"used_gb":      gigabytes(v.Used),
			"used_percent": fmt.Sprintf("%.2f%%", v.UsedPercent),
			"free_gb":      gigabytes(v.Free),
		}
	}

	if d, err := disk.UsageWithContext(ctx, "/"); err == nil {
		res["disk"] = map[string]interface{}{
			"total_gb":     gigabytes(d.Total),
			"used_gb":      gigabytes(d.Used),
			"used_percent": fmt.Sprintf("%.2f%%", d.UsedPercent),
		}
	}

	code := http.StatusOK
	if status != "online" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, res)
}
