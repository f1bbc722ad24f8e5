package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"NewsClassifier/internal/domain"
	"NewsClassifier/internal/textproc"
)

type memorySource struct {
	docs []domain.Document
	err  error
}

func (m memorySource) Load(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

// goldenDocs is a hand-built corpus where "fraud" occurs only in fake
// documents and "budget" only in real ones, so a token-based classifier can
// separate the classes exactly. Every one-off word falls below the mean
// frequency and must be filtered away.
func goldenDocs() []domain.Document {
	rows := []struct {
		id    string
		label domain.Label
		text  string
	}{
		{"f1", domain.LabelFake, "hoax hoax fraud media umbrella"},
		{"f2", domain.LabelFake, "hoax hoax hoax fraud media goblin"},
		{"f3", domain.LabelFake, "hoax fraud fraud media media pickle"},
		{"f4", domain.LabelFake, "hoax hoax fraud media walrus"},
		{"f5", domain.LabelFake, "hoax hoax fraud fraud media vote trombone"},
		{"r1", domain.LabelReal, "budget budget vote media igloo"},
		{"r2", domain.LabelReal, "budget budget budget vote media cactus"},
		{"r3", domain.LabelReal, "budget vote vote media media yodel"},
		{"r4", domain.LabelReal, "budget budget vote media quartz"},
		{"r5", domain.LabelReal, "budget budget vote vote media hoax bonsai"},
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, domain.Document{
			ID:    r.id,
			Title: r.id,
			Text:  r.text,
			Label: r.label,
		})
	}
	return docs
}

func goldenParams() Params {
	return Params{
		CuratedTokens: []string{"budget", "fraud", "hoax", "media", "vote"},
		Components:    2,

		SplitFraction: 0.8,
		SplitSeed:     1,

		ForestTrees:   64,
		ForestMinLeaf: 1,
		ForestSeed:    1,

		SVMLinearCost:      1,
		SVMCosts:           []float64{1, 10},
		SVMGammas:          []float64{0.1, 1},
		SVMHoldoutFraction: 0.25,
		SVMMaxPasses:       20,
	}
}

func goldenPipeline(source memorySource) *Pipeline {
	return NewPipeline(PipelineDeps{
		Source:     source,
		Normalizer: textproc.NewNormalizer(false),
		Tokenizer:  textproc.NewTokenizer(nil, "english"),
		Params:     goldenParams(),
	})
}

func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	pipeline := goldenPipeline(memorySource{docs: goldenDocs()})

	result, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	wantVocabulary := []string{"budget", "fraud", "hoax", "media", "vote"}
	if !reflect.DeepEqual(result.Vocabulary, wantVocabulary) {
		t.Fatalf("vocabulary = %v, want %v", result.Vocabulary, wantVocabulary)
	}

	// The partition is a pure function of seed 1 over 10 rows in document
	// order, so the exact membership is pinned, not just the 8/2 sizes.
	wantTrain := []string{"f1", "f2", "f3", "f4", "f5", "r2", "r4", "r5"}
	wantTest := []string{"r1", "r3"}
	if !reflect.DeepEqual(result.TrainIDs, wantTrain) {
		t.Fatalf("train partition = %v, want %v", result.TrainIDs, wantTrain)
	}
	if !reflect.DeepEqual(result.TestIDs, wantTest) {
		t.Fatalf("test partition = %v, want %v", result.TestIDs, wantTest)
	}

	wantModels := []string{ModelForestTokens, ModelForestPCA, ModelSVMLinear, ModelSVMRadial}
	if len(result.Evaluations) != len(wantModels) {
		t.Fatalf("got %d evaluations, want %d", len(result.Evaluations), len(wantModels))
	}
	for i, ev := range result.Evaluations {
		if ev.Model != wantModels[i] {
			t.Fatalf("evaluation %d is %q, want %q", i, ev.Model, wantModels[i])
		}
		c := ev.Confusion
		if c.TP+c.FN+c.FP+c.TN != 2 {
			t.Fatalf("%s confusion does not cover the test set: %+v", ev.Model, c)
		}
	}

	// "fraud" and "budget" split the classes perfectly, so the token forest
	// must classify both held-out documents correctly.
	forest := result.Evaluations[0]
	if forest.Confusion.FP != 0 || forest.Confusion.FN != 0 {
		t.Fatalf("token forest misclassified held-out documents: %+v", forest.Confusion)
	}
	if forest.Accuracy != 1 {
		t.Fatalf("token forest accuracy = %v, want 1", forest.Accuracy)
	}
	if len(forest.Importance) == 0 {
		t.Fatal("token forest reported no variable importance")
	}

	if len(result.Projection.Explained) != 2 {
		t.Fatalf("explained variance has %d entries, want 2", len(result.Projection.Explained))
	}
	if result.Projection.Explained[0] < result.Projection.Explained[1] {
		t.Fatalf("explained variance not descending: %v", result.Projection.Explained)
	}

	if result.RadialBest.Cost == 0 || result.RadialBest.Gamma == 0 {
		t.Fatalf("radial grid selected no candidate: %+v", result.RadialBest)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	first, err := goldenPipeline(memorySource{docs: goldenDocs()}).Run(ctx)
	if err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	second, err := goldenPipeline(memorySource{docs: goldenDocs()}).Run(ctx)
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}

	if !reflect.DeepEqual(first.TrainIDs, second.TrainIDs) {
		t.Fatalf("train partitions differ:\n%v\n%v", first.TrainIDs, second.TrainIDs)
	}
	if !reflect.DeepEqual(first.TestIDs, second.TestIDs) {
		t.Fatalf("test partitions differ:\n%v\n%v", first.TestIDs, second.TestIDs)
	}

	for i := range first.Evaluations {
		a, b := first.Evaluations[i], second.Evaluations[i]
		if a.Confusion != b.Confusion {
			t.Fatalf("%s confusion differs across runs: %+v vs %+v",
				a.Model, a.Confusion, b.Confusion)
		}
		if a.Accuracy != b.Accuracy || a.Kappa != b.Kappa {
			t.Fatalf("%s metrics differ across runs", a.Model)
		}
	}

	if first.RadialBest != second.RadialBest {
		t.Fatalf("radial grid winner differs across runs: %+v vs %+v",
			first.RadialBest, second.RadialBest)
	}
}

func TestRunPropagatesSourceError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("dataset unreadable")
	pipeline := goldenPipeline(memorySource{err: wantErr})

	if _, err := pipeline.Run(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Run error = %v, want wrapped %v", err, wantErr)
	}
}

func TestRunFailsOnEmptyCorpus(t *testing.T) {
	t.Parallel()

	pipeline := goldenPipeline(memorySource{docs: []domain.Document{
		{ID: "d1", Title: "t", Text: "", Label: domain.LabelReal},
	}})

	if _, err := pipeline.Run(context.Background()); err == nil {
		t.Fatal("expected empty-corpus error")
	}
}
