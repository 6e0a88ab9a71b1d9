package core

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// metricTagKeys are the observation fields copied onto metric tags.
var metricTagKeys = []string{"provider_id", "method", "status_code", "phase"}

// observation is one finished authenticate or dispatch call.
type observation struct {
	operation string
	started   time.Time
	err       error
	fields    map[string]any
}

func (o observation) name() string {
	name := strings.ToLower(strings.TrimSpace(o.operation))
	name = strings.NewReplacer(" ", "_", "-", "_").Replace(name)
	if name == "" {
		return "unknown"
	}
	return name
}

func (o observation) status() string {
	if o.err != nil {
		return "failure"
	}
	return "success"
}

func (o observation) logFields(elapsed time.Duration) map[string]any {
	out := cloneFields(o.fields)
	out["event_type"] = o.name()
	out["status"] = o.status()
	out["duration_ms"] = elapsed.Milliseconds()
	if o.err == nil {
		return out
	}
	out["error"] = o.err.Error()
	var rich *goerrors.Error
	if goerrors.As(o.err, &rich) && rich != nil {
		out["error_category"] = string(rich.Category)
		out["error_text_code"] = rich.TextCode
		if rich.Code > 0 {
			out["error_code"] = rich.Code
		}
	}
	return out
}

func (o observation) tags() map[string]string {
	tags := map[string]string{"operation": o.name(), "status": o.status()}
	for _, key := range metricTagKeys {
		value, ok := o.fields[key]
		if !ok || value == nil {
			continue
		}
		if text := strings.TrimSpace(fmt.Sprint(value)); text != "" {
			tags[key] = text
		}
	}
	return tags
}

// observer emits a total counter, a duration histogram and a log line per
// observation. Metric names are <prefix>.<operation>.total and
// <prefix>.<operation>.duration_ms.
type observer struct {
	logger  Logger
	metrics MetricsRecorder
	prefix  string
}

func (o observer) record(ctx context.Context, obs observation) {
	elapsed := time.Since(obs.started)
	prefix := strings.TrimSpace(o.prefix)
	if prefix == "" {
		prefix = "clouds"
	}
	metric := prefix + "." + obs.name()

	if o.metrics != nil {
		o.metrics.IncCounter(ctx, metric+".total", 1, obs.tags())
		o.metrics.ObserveHistogram(ctx, metric+".duration_ms", float64(elapsed.Milliseconds()), obs.tags())
	}
	if o.logger == nil {
		return
	}

	fields := obs.logFields(elapsed)
	logger := o.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if withFields, ok := logger.(FieldsLogger); ok {
		logger = withFields.WithFields(cloneFields(fields))
	}
	if obs.err != nil {
		logger.Error(obs.name()+" failed", flattenFields(fields)...)
		return
	}
	logger.Info(obs.name()+" succeeded", flattenFields(fields)...)
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	maps.Copy(out, fields)
	return out
}

// flattenFields turns fields into key/value args sorted by key.
func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	args := make([]any, 0, len(fields)*2)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, key, fields[key])
	}
	return args
}
