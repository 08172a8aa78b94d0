/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/tokenmart/goapi/base/env"
	"github.com/tokenmart/goapi/base/log"
)

const (
	ddClientsSize    = 8 // needs to be 2^n
	ddClientsIdxMask = ddClientsSize - 1
	// buffer a few counters before sending to the statsd agent
	bufferMetrics = 10
	ddRate        = 1
)

var (
	initOnce     = sync.Once{}
	ddClientsIdx = int32(0)
	ddClients    []statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// Ender finishes a timer started by BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

func initDDClients() {
	host := viper.GetString("datadog_host")
	if host == "" {
		ddClients = make([]statsCli, ddClientsSize)
		for i := range ddClients {
			ddClients[i] = &logClient{}
		}
		return
	}
	addr := fmt.Sprintf("%s:%d", host, 8125)
	ddClients = make([]statsCli, ddClientsSize)
	for i := 0; i < ddClientsSize; i++ {
		cli, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
		}
		ddClients[i] = cli
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	tags := []string{
		"host:", // remove unused host tag
		"pod:" + env.PodName(),
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	return &metricsImpl{pkgName: pkgName, tags: tags}
}

type metricsImpl struct {
	pkgName string
	tags    []string
}

func (mt *metricsImpl) cli() statsCli {
	initOnce.Do(initDDClients)
	i := atomic.AddInt32(&ddClientsIdx, 1) & ddClientsIdxMask
	return ddClients[i]
}

func (mt *metricsImpl) BumpAvg(key string, val float64, tags ...string) {
	if err := mt.cli().Gauge(mt.pkgName+"."+key, val, append(mt.tags, parseTag(tags)...), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("Bump fail")
	}
}

func (mt *metricsImpl) BumpSum(key string, val float64, tags ...string) {
	if err := mt.cli().Count(mt.pkgName+"."+key, int64(val), append(mt.tags, parseTag(tags)...), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("Bump fail")
	}
}

func (mt *metricsImpl) BumpHistogram(key string, val float64, tags ...string) {
	if err := mt.cli().Histogram(mt.pkgName+"."+key, val, append(mt.tags, parseTag(tags)...), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("Bump fail")
	}
}

// BumpTime starts a timer; call End() on the returned value to record it:
//
//     defer s.BumpTime("my.function").End()
func (mt *metricsImpl) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		cli:   mt.cli(),
		start: time.Now(),
		key:   mt.pkgName + "." + key,
		tags:  append(mt.tags, parseTag(tags)...),
	}
}

func parseTag(tags []string) []string {
	if tags == nil {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}

type timeTracker struct {
	cli   statsCli
	start time.Time
	key   string
	tags  []string
}

func (t *timeTracker) End() {
	d := time.Since(t.start)
	dur := float64(d/time.Millisecond) + float64(d%time.Millisecond)*1e-6
	if err := t.cli.TimeInMilliseconds(t.key, dur, t.tags, ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": t.key}).Error("Bump fail")
	}
}

// logClient logs metrics instead of shipping them, used when no agent host
// is configured
type logClient struct{}

func (lc *logClient) Gauge(name string, value float64, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric gauge")
	return nil
}

func (lc *logClient) Count(name string, value int64, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric count")
	return nil
}

func (lc *logClient) Histogram(name string, value float64, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric histogram")
	return nil
}

func (lc *logClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "time_ms": value, "tags": tags}).Debug("metric time")
	return nil
}
