package stats

import (
	"testing"
	"time"
)

func TestPrecisionChange(t *testing.T) {
	stat := NewCustomStatsReceiver(NewFinagleStatsRegistry).(*defaultStatsReceiver)
	if stat.precision != time.Nanosecond {
		t.Fatal("Default precision should be nanos.")
	}

	statp := stat.Precision(time.Millisecond).(*defaultStatsReceiver)
	if stat.precision != time.Nanosecond {
		t.Fatal("Default precision should still nanos.")
	}
	if statp.precision != time.Millisecond {
		t.Fatal("New stat precision should be millis.")
	}
}

func TestScopeChange(t *testing.T) {
	stat := NewCustomStatsReceiver(NewFinagleStatsRegistry).(*defaultStatsReceiver)
	if len(stat.scope) != 0 {
		t.Fatal("Default scope should be empty.")
	}

	statp := stat.Scope("a/b", "c").(*defaultStatsReceiver)
	if len(stat.scope) != 0 {
		t.Fatal("Default scope should still empty.")
	}
	if len(statp.scope) != 2 || statp.scope[0] != "a_SLASH_b" || statp.scope[1] != "c" {
		t.Fatal("Invalid scope value: ", statp.scope)
	}
	if statp.scopedName("d") != "a_SLASH_b/c/d" {
		t.Fatal("Invalid scope name: " + statp.scopedName("d"))
	}

	// sibling scopes must not share a backing array
	x := statp.Scope("x").(*defaultStatsReceiver)
	y := statp.Scope("y").(*defaultStatsReceiver)
	if x.scopedName() != "a_SLASH_b/c/x" || y.scopedName() != "a_SLASH_b/c/y" {
		t.Fatal("Sibling scopes clobbered each other: ", x.scope, y.scope)
	}
}

func TestRegister(t *testing.T) {
	reg := NewFinagleStatsRegistry()
	if reg.GetOrRegister("counter", NewCounter()) == nil {
		t.Fatal("Registry did not save instrument")
	}
	if reg.GetOrRegister("gauge", NewGauge()) == nil {
		t.Fatal("Registry did not save instrument")
	}
	if reg.GetOrRegister("gaugeFloat", NewGaugeFloat()) == nil {
		t.Fatal("Registry did not save instrument")
	}
	if reg.GetOrRegister("histogram", NewHistogram()) == nil {
		t.Fatal("Registry did not save instrument")
	}
	if reg.GetOrRegister("latency", NewLatency()) == nil {
		t.Fatal("Registry did not save instrument")
	}
}

func TestMarshal(t *testing.T) {
	Time = NewTestTime(time.Unix(0, 0), time.Nanosecond*5)
	defer func() { Time = DefaultStatsTime() }()

	reg := NewFinagleStatsRegistry()
	reg.GetOrRegister("counter", NewCounter()).(Counter).Inc(1)
	reg.GetOrRegister("gauge", NewGauge()).(Gauge).Update(2)

	reg.GetOrRegister("latency", NewLatency()).(Latency).Time().Stop()
	Time = NewTestTime(time.Unix(0, 0), time.Nanosecond*10)
	reg.GetOrRegister("latency", NewLatency()).(Latency).Time().Stop()

	bytes, err := reg.(MarshalerPretty).MarshalJSONPretty()
	expected :=
		`{
  "counter": 1,
  "gauge": 2,
  "latency.avg": 7.5,
  "latency.count": 2,
  "latency.max": 10,
  "latency.min": 5,
  "latency.p50": 7.5,
  "latency.p90": 10,
  "latency.p95": 10,
  "latency.p99": 10,
  "latency.p999": 10,
  "latency.p9999": 10,
  "latency.sum": 15
}`
	if string(bytes) != expected {
		t.Fatal("Wrong json marshal output: ", string(bytes), err)
	}
}

func TestRenderClearsHistograms(t *testing.T) {
	stat := NewCustomStatsReceiver(NewFinagleStatsRegistry)
	stat.Counter("counter").Inc(3)
	stat.Histogram("hist").Update(4)

	rendered := string(stat.Render(false))
	if rendered != `{"counter":3,"hist.avg":4,"hist.count":1,"hist.max":4,"hist.min":4,"hist.p50":4,"hist.p90":4,"hist.p95":4,"hist.p99":4,"hist.p999":4,"hist.p9999":4,"hist.sum":4}` {
		t.Fatal("Expected current stats in render", rendered)
	}

	if stat.Histogram("hist").Count() != 0 {
		t.Fatal("Expected histogram to be cleared after render")
	}
	if stat.Counter("counter").Count() != 3 {
		t.Fatal("Expected counters to survive render")
	}
}

func TestNilReceiver(t *testing.T) {
	stat := NilStatsReceiver()
	stat.Scope("a").Counter("b").Inc(1)
	stat.Latency("l").Time().Stop()
	if stat.Counter("b").Count() != 0 {
		t.Fatal("Nil counter should not count")
	}
	if string(stat.Render(true)) != "{}" {
		t.Fatal("Nil receiver should render an empty object")
	}
}

func TestVerifyStats(t *testing.T) {
	reg := NewFinagleStatsRegistry()
	stat := NewCustomStatsReceiver(func() StatsRegistry { return reg }).Scope("search")
	stat.Counter(SearchRunsCounter).Inc(2)
	stat.GaugeFloat(SearchBestScoreGauge).Update(251.5)

	VerifyStats("verify", reg, t, map[string]Rule{
		"search/" + SearchRunsCounter:       {Checker: Int64EqTest, Value: 2},
		"search/" + SearchBestScoreGauge:    {Checker: FloatGTTest, Value: 250.0},
		"search/" + SearchInfeasibleCounter: {Checker: DoesNotExistTest},
	})
}

func TestRenderLatencyPrecision(t *testing.T) {
	reg := NewFinagleStatsRegistry()
	stat := NewCustomStatsReceiver(func() StatsRegistry { return reg })
	stat.Precision(time.Millisecond).Latency("shard_ms").Record(3 * time.Millisecond)
	stat.Precision(time.Millisecond).Latency("shard_ms").Record(5 * time.Millisecond)

	VerifyStats("latency", reg, t, map[string]Rule{
		"shard_ms.count": {Checker: Int64EqTest, Value: 2},
		"shard_ms.min":   {Checker: Int64EqTest, Value: 3},
		"shard_ms.max":   {Checker: Int64EqTest, Value: 5},
		"shard_ms.avg":   {Checker: FloatEqTest, Value: 4.0},
	})
}
