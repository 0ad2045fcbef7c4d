//-------------------------------------------------------------------------
//
// Supply Chain Warehouse Builder
//
// Copyright (c) 2025 - 2026, Chainsight Analytics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package export

// RiskSample is one observation for the late-delivery risk model: the
// shipping features of a fact row plus whether the delivery was late.
type RiskSample struct {
	ShippingMode  string
	DaysScheduled int
	Market        string
	Category      string
	Late          bool
}

type riskKey struct {
	mode      string
	scheduled int
	market    string
	category  string
}

type riskCount struct {
	late  int
	total int
}

// RiskModel predicts the late-delivery flag from shipping mode, scheduled
// days, market, and category. It is a smoothed empirical-rate estimator:
// the late rate of each exact feature bucket, backed off to the shipping
// mode alone and then to the global rate when a bucket is unseen.
type RiskModel struct {
	buckets map[riskKey]riskCount
	byMode  map[string]riskCount
	global  riskCount
}

// TrainRiskModel fits the estimator on historical fact rows.
func TrainRiskModel(samples []RiskSample) *RiskModel {
	m := &RiskModel{
		buckets: make(map[riskKey]riskCount),
		byMode:  make(map[string]riskCount),
	}
	for _, s := range samples {
		k := key(s)
		b := m.buckets[k]
		b.total++
		mode := m.byMode[s.ShippingMode]
		mode.total++
		m.global.total++
		if s.Late {
			b.late++
			mode.late++
			m.global.late++
		}
		m.buckets[k] = b
		m.byMode[s.ShippingMode] = mode
	}
	return m
}

// Predict returns the predicted late flag (0 or 1) and the model's
// confidence that the delivery will be late, in [0, 1].
func (m *RiskModel) Predict(s RiskSample) (int, float64) {
	rate := m.rate(s)
	if rate >= 0.5 {
		return 1, rate
	}
	return 0, rate
}

func (m *RiskModel) rate(s RiskSample) float64 {
	if b, ok := m.buckets[key(s)]; ok && b.total > 0 {
		return smoothed(b)
	}
	if b, ok := m.byMode[s.ShippingMode]; ok && b.total > 0 {
		return smoothed(b)
	}
	if m.global.total > 0 {
		return smoothed(m.global)
	}
	return 0.5
}

// smoothed applies add-one smoothing so small buckets never produce a hard
// 0 or 1.
func smoothed(c riskCount) float64 {
	return float64(c.late+1) / float64(c.total+2)
}

func key(s RiskSample) riskKey {
	return riskKey{
		mode:      s.ShippingMode,
		scheduled: s.DaysScheduled,
		market:    s.Market,
		category:  s.Category,
	}
}
