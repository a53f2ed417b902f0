// Package estimate - Pipeline tests
// End-to-end scenarios run against an in-memory KB index and fake
// collaborators; nothing here touches the network.
package estimate

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/kb"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/normalize"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
)

type fakeMapper struct {
	mappings      []types.ComponentMapping
	err           error
	gotPhrases    []string
	gotCandidates []string
}

func (m *fakeMapper) MapComponents(_ context.Context, phrases []string, _, _, _ string, candidates []string) ([]types.ComponentMapping, error) {
	m.gotPhrases = phrases
	m.gotCandidates = candidates
	return m.mappings, m.err
}

type fakeEstimator struct {
	costs map[string]string // component -> decimal string
	err   error
	calls []string
}

func (e *fakeEstimator) EstimateCost(_ context.Context, component, _, _, _, _ string) (*decimal.Decimal, error) {
	e.calls = append(e.calls, component)
	if e.err != nil {
		return nil, e.err
	}
	raw, ok := e.costs[component]
	if !ok {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type failingDescriber struct{}

func (failingDescriber) Describe(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("model timeout")
}

type failingClassifier struct{}

func (failingClassifier) IsDomestic(context.Context, string) (bool, error) {
	return false, fmt.Errorf("model timeout")
}

func loadedIndex(rows ...kb.RawRow) *kb.Index {
	index := kb.NewDefaultIndex()
	index.Load(rows)
	return index
}

func bumperRow() kb.RawRow {
	return kb.RawRow{
		Brand: "Toyota", Model: "Innova", Region: "Mumbai", Component: "Bumper Front",
		PartCost: "3000", FittingCost: "500",
	}
}

func request(phrases ...string) Request {
	return Request{Brand: "Toyota", Model: "Innova", Region: "Mumbai", DamagePhrases: phrases}
}

func TestCollectStableDedupe(t *testing.T) {
	got := Collect([]string{"A", "B", "A", "C"})
	if !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Collect = %v, want [A B C]", got)
	}

	// Case-sensitive: dedupe happens before any normalization
	got = Collect([]string{"boot", "Boot"})
	if !reflect.DeepEqual(got, []string{"boot", "Boot"}) {
		t.Errorf("Collect = %v, case-differing phrases must stay distinct", got)
	}
}

// Scenario: synonym hit resolves against a KB row with at-par fields
func TestEstimateKnowledgeBaseATPAR(t *testing.T) {
	normalizer := normalize.NewDefault()
	p := NewPipeline(loadedIndex(bumperRow()), normalizer, OfflineCollaborators(normalizer), Options{})

	result := p.Estimate(context.Background(), request("front bumper"))

	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(result.Items))
	}
	item := result.Items[0]
	if item.Sequence != 1 || item.Component != "Bumper Front" {
		t.Errorf("item = %+v, want sequence 1 for Bumper Front", item)
	}
	if item.Cost != 3500 {
		t.Errorf("item cost = %d, want 3500", item.Cost)
	}
	if item.CostSource != types.SourceKnowledgeBaseATPAR {
		t.Errorf("cost source = %s, want knowledge_base_atpar", item.CostSource)
	}
	if result.Total != 3500 {
		t.Errorf("total = %d, want 3500", result.Total)
	}
	if result.Currency != "₹" {
		t.Errorf("currency = %q, want ₹", result.Currency)
	}
	if !result.IsDomestic {
		t.Error("offline collaborators must classify as domestic")
	}

	wantNote := "NOTE: Bumper Front: ATPAR for dainting_cost, paint_cost, other_cost (requires inspection)."
	if len(result.Notes) != 2 || result.Notes[1] != wantNote {
		t.Errorf("notes = %v, want disclaimer then %q", result.Notes, wantNote)
	}
	if !strings.HasPrefix(result.Notes[0], "Disclaimer:") {
		t.Errorf("first note = %q, want the disclaimer", result.Notes[0])
	}
}

func TestEstimateFullyPricedRowHasNoNote(t *testing.T) {
	row := bumperRow()
	row.DaintingCost, row.PaintCost, row.OtherCost = "200", "300", "100"
	normalizer := normalize.NewDefault()
	p := NewPipeline(loadedIndex(row), normalizer, OfflineCollaborators(normalizer), Options{})

	result := p.Estimate(context.Background(), request("front bumper"))

	if result.Items[0].CostSource != types.SourceKnowledgeBase {
		t.Errorf("cost source = %s, want knowledge_base", result.Items[0].CostSource)
	}
	if result.Items[0].Cost != 4100 || result.Total != 4100 {
		t.Errorf("cost/total = %d/%d, want 4100/4100", result.Items[0].Cost, result.Total)
	}
	if len(result.Notes) != 1 {
		t.Errorf("notes = %v, want only the disclaimer", result.Notes)
	}
}

// Scenario: empty KB and silent mapper synthesize General Body Repair
func TestEstimateSynthesizesFallbackMapping(t *testing.T) {
	mapper := &fakeMapper{}
	estimator := &fakeEstimator{costs: map[string]string{"General Body Repair": "5000.75"}}
	p := NewPipeline(kb.NewDefaultIndex(), normalize.NewDefault(), Collaborators{
		Mapper:    mapper,
		Estimator: estimator,
		Describer: StaticDescriber{},
		Region:    StaticRegionClassifier{Domestic: true},
	}, Options{})

	result := p.Estimate(context.Background(), request("mangled rear quarter"))

	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want the synthesized line only", len(result.Items))
	}
	item := result.Items[0]
	if item.Component != "General Body Repair" {
		t.Errorf("component = %q, want General Body Repair", item.Component)
	}
	if item.Cost != 5000 || item.CostSource != types.SourceAIGenerated {
		t.Errorf("item = %+v, want truncated ai_generated cost 5000", item)
	}
	if len(mapper.gotCandidates) != 0 {
		t.Errorf("mapper candidates = %v, want empty for unknown triple", mapper.gotCandidates)
	}
	if estimator.calls[0] != "General Body Repair" {
		t.Errorf("estimator called with %v, want General Body Repair first", estimator.calls)
	}
}

// Scenario: estimator cannot price an unknown component
func TestEstimateUnavailableComponent(t *testing.T) {
	mapper := &fakeMapper{mappings: []types.ComponentMapping{
		{Detected: "shattered sunroof", Standard: "Sunroof Assembly"},
	}}
	p := NewPipeline(kb.NewDefaultIndex(), normalize.NewDefault(), Collaborators{
		Mapper:    mapper,
		Estimator: &fakeEstimator{},
		Describer: StaticDescriber{},
		Region:    StaticRegionClassifier{Domestic: true},
	}, Options{})

	result := p.Estimate(context.Background(), request("shattered sunroof"))

	item := result.Items[0]
	if item.CostSource != types.SourceUnavailable || item.Cost != 0 {
		t.Errorf("item = %+v, want unavailable with cost 0", item)
	}
	wantNote := "NOTE: Sunroof Assembly: cost unavailable; manual estimate required."
	if len(result.Notes) != 2 || result.Notes[1] != wantNote {
		t.Errorf("notes = %v, want %q", result.Notes, wantNote)
	}
	if result.Total != 0 {
		t.Errorf("total = %d, want 0", result.Total)
	}
}

// Scenario: labour lookup and labour estimation both fail
func TestEstimateOmitsLabourWhenUnobtainable(t *testing.T) {
	normalizer := normalize.NewDefault()
	p := NewPipeline(loadedIndex(bumperRow()), normalizer, OfflineCollaborators(normalizer), Options{})

	result := p.Estimate(context.Background(), request("front bumper"))

	for _, item := range result.Items {
		if item.Component == "Labour" {
			t.Fatalf("labour line appeared with no obtainable labour cost: %+v", item)
		}
	}
	if result.Total != 3500 {
		t.Errorf("total = %d, want 3500 excluding labour", result.Total)
	}
}

func TestEstimateLabourFromKnowledgeBase(t *testing.T) {
	labour := kb.RawRow{
		Brand: "Toyota", Model: "Innova", Region: "Mumbai", Component: "Labour",
		OtherCost: "800",
	}
	normalizer := normalize.NewDefault()
	p := NewPipeline(loadedIndex(bumperRow(), labour), normalizer, OfflineCollaborators(normalizer), Options{})

	result := p.Estimate(context.Background(), request("front bumper"))

	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want component line plus labour", len(result.Items))
	}
	labourItem := result.Items[1]
	if labourItem.Component != "Labour" || labourItem.Sequence != 2 {
		t.Errorf("labour item = %+v, want Labour at sequence 2", labourItem)
	}
	if labourItem.Cost != 800 || labourItem.CostSource != types.SourceKnowledgeBase {
		t.Errorf("labour item = %+v, want knowledge_base cost 800", labourItem)
	}
	if result.Total != 4300 {
		t.Errorf("total = %d, want 4300 including labour", result.Total)
	}
}

func TestEstimateLabourFromEstimator(t *testing.T) {
	estimator := &fakeEstimator{costs: map[string]string{"Labour": "1200"}}
	normalizer := normalize.NewDefault()
	p := NewPipeline(loadedIndex(bumperRow()), normalizer, Collaborators{
		Mapper:    HeuristicMapper{Normalizer: normalizer},
		Estimator: estimator,
		Describer: StaticDescriber{},
		Region:    StaticRegionClassifier{Domestic: true},
	}, Options{})

	result := p.Estimate(context.Background(), request("front bumper"))

	labourItem := result.Items[len(result.Items)-1]
	if labourItem.Component != "Labour" || labourItem.CostSource != types.SourceAIGenerated {
		t.Errorf("labour item = %+v, want ai_generated Labour line", labourItem)
	}
	if result.Total != 4700 {
		t.Errorf("total = %d, want 4700", result.Total)
	}
}

func TestEstimateDedupesMappingsByStandardName(t *testing.T) {
	mapper := &fakeMapper{mappings: []types.ComponentMapping{
		{Detected: "front bumper", Standard: "Bumper Front"},
		{Detected: "bumper up front", Standard: "Bumper Front"},
		{Detected: "left headlight", Standard: "Headlight Left"},
	}}
	estimator := &fakeEstimator{costs: map[string]string{"Headlight Left": "2500"}}
	p := NewPipeline(loadedIndex(bumperRow()), normalize.NewDefault(), Collaborators{
		Mapper:    mapper,
		Estimator: estimator,
		Describer: StaticDescriber{},
		Region:    StaticRegionClassifier{Domestic: true},
	}, Options{})

	result := p.Estimate(context.Background(), request("front bumper", "bumper up front", "left headlight"))

	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want 2 after standard-name dedupe", len(result.Items))
	}
	if result.Items[0].Component != "Bumper Front" || result.Items[1].Component != "Headlight Left" {
		t.Errorf("items = %+v, want first-seen order preserved", result.Items)
	}
	if result.Items[0].Sequence != 1 || result.Items[1].Sequence != 2 {
		t.Error("sequence numbers not stable 1-based")
	}
}

func TestEstimateMapperFailureDegradesToFallback(t *testing.T) {
	mapper := &fakeMapper{err: fmt.Errorf("malformed JSON from model")}
	p := NewPipeline(kb.NewDefaultIndex(), normalize.NewDefault(), Collaborators{
		Mapper:    mapper,
		Estimator: &fakeEstimator{},
		Describer: StaticDescriber{},
		Region:    StaticRegionClassifier{Domestic: true},
	}, Options{})

	result := p.Estimate(context.Background(), request("crushed tailgate"))

	if len(result.Items) != 1 || result.Items[0].Component != "General Body Repair" {
		t.Errorf("items = %+v, want the synthesized fallback line", result.Items)
	}
}

func TestEstimateNeverEmptyOnNonEmptyInput(t *testing.T) {
	// Everything fails: empty KB, no mapper results, no estimator
	normalizer := normalize.NewDefault()
	p := NewPipeline(kb.NewDefaultIndex(), normalizer, Collaborators{
		Mapper:    &fakeMapper{},
		Estimator: NopEstimator{},
		Describer: failingDescriber{},
		Region:    failingClassifier{},
	}, Options{})

	result := p.Estimate(context.Background(), request("something happened"))

	if len(result.Items) < 1 {
		t.Fatal("estimate has no items for non-empty input")
	}
	if result.Items[0].CostSource != types.SourceUnavailable {
		t.Errorf("cost source = %s, want unavailable", result.Items[0].CostSource)
	}
	// Describer failure degrades to the fixed one-liner
	if result.Items[0].Description != "General Body Repair shows visible damage." {
		t.Errorf("description = %q, want degraded one-liner", result.Items[0].Description)
	}
	// Region classifier failure fails open toward domestic
	if !result.IsDomestic {
		t.Error("classifier failure must fail open toward domestic pricing")
	}
}

func TestEstimateCrossBorderCaveat(t *testing.T) {
	normalizer := normalize.NewDefault()
	collab := OfflineCollaborators(normalizer)
	collab.Region = StaticRegionClassifier{Domestic: false}
	p := NewPipeline(loadedIndex(bumperRow()), normalizer, collab, Options{})

	result := p.Estimate(context.Background(), Request{
		Brand: "Toyota", Model: "Innova", Region: "Dubai",
		DamagePhrases: []string{"front bumper"},
	})

	if result.IsDomestic {
		t.Error("IsDomestic = true, want false")
	}
	last := result.Notes[len(result.Notes)-1]
	if !strings.Contains(last, "outside India") {
		t.Errorf("last note = %q, want the cross-border caveat", last)
	}
}

func TestEstimateTotalMatchesItemSum(t *testing.T) {
	rows := []kb.RawRow{
		bumperRow(),
		{Brand: "Toyota", Model: "Innova", Region: "Mumbai", Component: "Tail light", PartCost: "900"},
		{Brand: "Toyota", Model: "Innova", Region: "Mumbai", Component: "Labour", PartCost: "1100"},
	}
	mapper := &fakeMapper{mappings: []types.ComponentMapping{
		{Detected: "front bumper", Standard: "Bumper Front"},
		{Detected: "broken tail light", Standard: "Tail light"},
	}}
	normalizer := normalize.NewDefault()
	p := NewPipeline(loadedIndex(rows...), normalizer, Collaborators{
		Mapper:    mapper,
		Estimator: NopEstimator{},
		Describer: StaticDescriber{},
		Region:    StaticRegionClassifier{Domestic: true},
	}, Options{})

	result := p.Estimate(context.Background(), request("front bumper", "broken tail light"))

	var sum int64
	for _, item := range result.Items {
		sum += item.Cost
	}
	if result.Total != sum {
		t.Errorf("total = %d, item sum = %d", result.Total, sum)
	}
	if result.Total != 5500 {
		t.Errorf("total = %d, want 5500", result.Total)
	}
}

func TestEstimateStandardDefaultsToDetected(t *testing.T) {
	mapper := &fakeMapper{mappings: []types.ComponentMapping{
		{Detected: "weird trim piece", Standard: ""},
	}}
	estimator := &fakeEstimator{costs: map[string]string{"weird trim piece": "650"}}
	p := NewPipeline(kb.NewDefaultIndex(), normalize.NewDefault(), Collaborators{
		Mapper:    mapper,
		Estimator: estimator,
		Describer: StaticDescriber{},
		Region:    StaticRegionClassifier{Domestic: true},
	}, Options{})

	result := p.Estimate(context.Background(), request("weird trim piece"))

	if result.Items[0].Component != "weird trim piece" {
		t.Errorf("component = %q, want the detected phrase", result.Items[0].Component)
	}
	if result.Items[0].Cost != 650 {
		t.Errorf("cost = %d, want 650", result.Items[0].Cost)
	}
}

func TestHeuristicMapperUsesCandidates(t *testing.T) {
	normalizer := normalize.NewDefault()
	mapper := HeuristicMapper{Normalizer: normalizer}

	mappings, err := mapper.MapComponents(context.Background(),
		[]string{"front bumper", "bonet hood", "  "},
		"Toyota", "Innova", "Mumbai",
		[]string{"Bumper Front", "Bonnet Hood"})
	if err != nil {
		t.Fatalf("MapComponents returned error: %v", err)
	}
	want := []types.ComponentMapping{
		{Detected: "front bumper", Standard: "Bumper Front"},
		{Detected: "bonet hood", Standard: "Bonnet Hood"},
	}
	if !reflect.DeepEqual(mappings, want) {
		t.Errorf("mappings = %v, want %v", mappings, want)
	}
}
