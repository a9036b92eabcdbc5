package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveFeatureDuration("orgmode", 150*time.Millisecond)
	pr.IncFeatureResult("orgmode", ResultSuccess)
	pr.IncFeatureResult("rss", ResultWarning)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(BuildOutcomeWarning)
	pr.ObserveConversionDuration(20*time.Millisecond, true)
	pr.IncConversionResult(true)
	pr.IncConversionResult(true)
	pr.IncConversionResult(false)
	pr.SetConversionWorkers(4)
	pr.SetFeedItems(3)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "," + lp.GetName() + "=" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				values[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[key] = m.GetGauge().GetValue()
			}
		}
	}
	assert.InDelta(t, 2, values["rvgswg_conversion_results_total,result=success"], 0)
	assert.InDelta(t, 1, values["rvgswg_conversion_results_total,result=failed"], 0)
	assert.InDelta(t, 4, values["rvgswg_conversion_workers"], 0)
	assert.InDelta(t, 1, values["rvgswg_feature_results_total,feature=rss,result=warning"], 0)
}

func TestPrometheusRecorderNilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncFeatureResult("orgmode", ResultFatal)
		pr.SetFeedItems(1)
	})
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome(BuildOutcomeSuccess)

	path := filepath.Join(t.TempDir(), "rvgswg.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rvgswg_build_outcomes_total{outcome="success"} 1`)
}
