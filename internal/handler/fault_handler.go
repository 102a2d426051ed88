package handler

import (
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"go-gin-ticket-store/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FaultHandler 提供故障注入端點, 用於混沌與韌性測試。
// 未啟用時一律回 403。
type FaultHandler struct {
	enabled bool
	logger  *zap.Logger
}

func NewFaultHandler(enabled bool) *FaultHandler {
	return &FaultHandler{
		enabled: enabled,
		logger:  logger.WithComponent("fault"),
	}
}

func (h *FaultHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/fault", h.gate())
	{
		router.GET("health", h.Health)
		router.GET("latency", h.Latency)
		router.GET("timeout", h.Timeout)
		router.GET("random", h.Random)
		router.GET("cpu-spike", h.CPUSpike)
		router.GET("memory-pressure", h.MemoryPressure)
	}
}

// gate 守門: 未啟用則回 403
func (h *FaultHandler) gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.enabled {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Fault injection disabled",
				"hint":  "Set ENABLE_FAULT_ENDPOINTS=true to enable",
			})
			return
		}
		c.Next()
	}
}

func (h *FaultHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "name": "fault-endpoints", "integrated": true})
}

// Latency 高延遲
func (h *FaultHandler) Latency(c *gin.Context) {
	delayMs := clampInt(queryInt(c, "delayMs", 2000), 0, 60_000)
	h.logger.Info("latency injection", zap.Int("delayMs", delayMs))

	select {
	case <-time.After(time.Duration(delayMs) * time.Millisecond):
	case <-c.Request.Context().Done():
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "type": "latency", "delayMs": delayMs})
}

// Timeout 逾時: 長時間持有連線, never=true 時不回應
func (h *FaultHandler) Timeout(c *gin.Context) {
	timeoutMs := clampInt(queryInt(c, "timeoutMs", 15_000), 0, 10*60_000)
	never := c.DefaultQuery("never", "false") == "true"
	h.logger.Warn("timeout injection", zap.Int("timeoutMs", timeoutMs), zap.Bool("never", never))

	if never {
		<-c.Request.Context().Done()
		return
	}
	select {
	case <-time.After(time.Duration(timeoutMs+1000) * time.Millisecond):
	case <-c.Request.Context().Done():
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "type": "timeout_hold", "heldMs": timeoutMs})
}

// Random 隨機錯誤
func (h *FaultHandler) Random(c *gin.Context) {
	errorRate := clampFloat(queryFloat(c, "errorRate", 0.3), 0, 1)
	willFail := rand.Float64() < errorRate
	h.logger.Warn("random failure injection", zap.Float64("errorRate", errorRate), zap.Bool("willFail", willFail))

	if willFail {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "type": "random", "errorRate": errorRate})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "type": "random", "errorRate": errorRate})
}

// CPUSpike CPU 尖峰: 忙迴圈佔用指定時長
func (h *FaultHandler) CPUSpike(c *gin.Context) {
	durationMs := clampInt(queryInt(c, "durationMs", 5000), 0, 60_000)
	h.logger.Warn("cpu spike start", zap.Int("durationMs", durationMs))

	deadline := time.Now().Add(time.Duration(durationMs) * time.Millisecond)
	for time.Now().Before(deadline) {
		math.Sqrt(rand.Float64() * 1000)
	}

	h.logger.Warn("cpu spike end")
	c.JSON(http.StatusOK, gin.H{"ok": true, "type": "cpu-spike", "durationMs": durationMs})
}

// MemoryPressure 記憶體壓力: 配置大塊記憶體並持有指定時長
func (h *FaultHandler) MemoryPressure(c *gin.Context) {
	mb := clampInt(queryInt(c, "mb", 200), 1, 1024)
	durationMs := clampInt(queryInt(c, "durationMs", 10_000), 0, 60_000)
	h.logger.Warn("memory pressure start", zap.Int("mb", mb), zap.Int("durationMs", durationMs))

	buf := make([]byte, mb*1024*1024)
	for i := range buf {
		buf[i] = 1
	}
	go func(hold []byte) {
		time.Sleep(time.Duration(durationMs) * time.Millisecond)
		h.logger.Warn("memory pressure end", zap.Int("mb", len(hold)/(1024*1024)))
	}(buf)

	c.JSON(http.StatusOK, gin.H{"ok": true, "type": "memory-pressure", "mb": mb, "durationMs": durationMs})
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

func queryFloat(c *gin.Context, key string, def float64) float64 {
	v, err := strconv.ParseFloat(c.DefaultQuery(key, strconv.FormatFloat(def, 'f', -1, 64)), 64)
	if err != nil {
		return def
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
