package lda

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Joysaath/bachelordata/gpa"
	"github.com/Joysaath/bachelordata/specimen"
)

// Operation name constant for unified error wrapping.
const opClassify = "Classify"

// cholAttempts bounds the ridge escalation when factorizing the pooled
// covariance: each retry multiplies the ridge by 10.
const cholAttempts = 8

// Classify runs cross-validated linear discriminant classification of
// aligned shapes against a categorical grouping.
//
// Procedure:
//   - build folds (leave-one-out by default, or a seeded k-fold split);
//   - for every fold, fit class means and the pooled within-class
//     covariance on the training specimens only, then predict the
//     held-out specimens by maximum discriminant score;
//   - accumulate predictions into Confusion[predicted][true] and derive
//     per-class recall;
//   - fit one more model on a deterministic stratified holdout split
//     (80/20 by default) and project its test specimens onto the first
//     two discriminant axes for display.
//
// Errors:
//   - ErrNilResult / ErrNilGrouping / ErrLabelMismatch / ErrTooFewClasses
//     on malformed input;
//   - ErrInsufficientData, naming the class, when folding leaves a class
//     with fewer than two training members;
//   - ErrSingularCovariance when regularization cannot rescue the solve.
//
// Determinism:
//   - Fixed fold construction and tie-breaking (lower class index wins);
//     identical seeds yield identical confusion matrices and scores.
func Classify(res *gpa.Result, g *specimen.Grouping, opts ...Option) (*ClassificationResult, error) {
	if res == nil {
		return nil, fmt.Errorf("%s: %w", opClassify, ErrNilResult)
	}
	if g == nil {
		return nil, fmt.Errorf("%s: %w", opClassify, ErrNilGrouping)
	}
	assign := g.Assignments()
	if len(assign) != res.Len() {
		return nil, fmt.Errorf("%s: %d assignments for %d specimens: %w",
			opClassify, len(assign), res.Len(), ErrLabelMismatch)
	}
	classes := g.Groups()
	if len(classes) < 2 {
		return nil, fmt.Errorf("%s: %w", opClassify, ErrTooFewClasses)
	}
	o := gatherOptions(opts...)

	rows := res.Coordinates()
	n := len(rows)
	classOf := make([]int, n)
	classPos := make(map[string]int, len(classes))
	for c, name := range classes {
		classPos[name] = c
	}
	for i, name := range assign {
		classOf[i] = classPos[name]
	}

	folds := buildFolds(n, o)

	confusion := make([][]int, len(classes))
	for i := range confusion {
		confusion[i] = make([]int, len(classes))
	}
	inFold := make([]bool, n)
	for _, fold := range folds {
		for i := range inFold {
			inFold[i] = false
		}
		for _, i := range fold {
			inFold[i] = true
		}
		train := make([]int, 0, n-len(fold))
		for i := 0; i < n; i++ {
			if !inFold[i] {
				train = append(train, i)
			}
		}

		m, err := fitModel(rows, classOf, train, classes, o.ridge)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opClassify, err)
		}
		for _, i := range fold {
			confusion[m.predict(rows[i])][classOf[i]]++
		}
	}

	recall := make([]float64, len(classes))
	for c := range classes {
		total := 0
		for pred := range classes {
			total += confusion[pred][c]
		}
		if total > 0 {
			recall[c] = float64(confusion[c][c]) / float64(total)
		}
	}

	projection, err := holdoutProjection(res, g, rows, classOf, classes, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opClassify, err)
	}

	return &ClassificationResult{
		Classes:    classes,
		Confusion:  confusion,
		Recall:     recall,
		Folds:      len(folds),
		Projection: projection,
	}, nil
}

// buildFolds returns test-index folds: n singletons for leave-one-out,
// or near-equal chunks of a seeded shuffle for k-fold. k is clamped to
// n, where it degenerates to leave-one-out.
func buildFolds(n int, o options) [][]int {
	if o.kfold == 0 || o.kfold >= n {
		folds := make([][]int, n)
		for i := 0; i < n; i++ {
			folds[i] = []int{i}
		}

		return folds
	}

	rng := rand.New(rand.NewPCG(o.seed, 0))
	order := rng.Perm(n)
	folds := make([][]int, o.kfold)
	for pos, idx := range order {
		f := pos % o.kfold
		folds[f] = append(folds[f], idx)
	}

	return folds
}

// model is one fitted discriminant model: per-class linear score
// functions plus the pieces the projection needs.
type model struct {
	p      int
	grand  []float64   // training grand mean
	means  [][]float64 // per-class training means
	counts []int
	alphas [][]float64 // Σ⁻¹ μ_c, precomputed
	biases []float64   // −½ μ_cᵀ Σ⁻¹ μ_c + log prior
	chol   mat.Cholesky
}

// fitModel estimates class means and the pooled within-class covariance
// from the training indices, failing fast when a class has fewer than
// two training members.
func fitModel(rows [][]float64, classOf, train []int, classes []string, ridge float64) (*model, error) {
	p := len(rows[0])
	g := len(classes)

	m := &model{
		p:      p,
		grand:  make([]float64, p),
		means:  make([][]float64, g),
		counts: make([]int, g),
	}
	for c := range m.means {
		m.means[c] = make([]float64, p)
	}
	for _, i := range train {
		c := classOf[i]
		m.counts[c]++
		floats.Add(m.means[c], rows[i])
		floats.Add(m.grand, rows[i])
	}
	for c, count := range m.counts {
		if count < 2 {
			return nil, fmt.Errorf("class %q has %d training member(s): %w",
				classes[c], count, ErrInsufficientData)
		}
		floats.Scale(1/float64(count), m.means[c])
	}
	floats.Scale(1/float64(len(train)), m.grand)

	// Pooled within-class covariance.
	cov := mat.NewSymDense(p, nil)
	diff := make([]float64, p)
	for _, i := range train {
		floats.SubTo(diff, rows[i], m.means[classOf[i]])
		cov.SymRankOne(cov, 1, mat.NewVecDense(p, diff))
	}
	scale := 1 / float64(len(train)-g)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			cov.SetSym(i, j, cov.At(i, j)*scale)
		}
	}

	// Trace-scaled ridge, escalated until the factorization succeeds.
	avgVar := 0.0
	for i := 0; i < p; i++ {
		avgVar += cov.At(i, i)
	}
	avgVar /= float64(p)
	lambda := ridge * avgVar
	if lambda <= 0 {
		lambda = ridge
	}
	if lambda <= 0 {
		lambda = DefaultRidge
	}
	ok := false
	for attempt := 0; attempt < cholAttempts; attempt++ {
		reg := mat.NewSymDense(p, nil)
		reg.CopySym(cov)
		for i := 0; i < p; i++ {
			reg.SetSym(i, i, reg.At(i, i)+lambda)
		}
		if m.chol.Factorize(reg) {
			ok = true
			break
		}
		lambda *= 10
	}
	if !ok {
		return nil, ErrSingularCovariance
	}

	// Precompute the linear score pieces.
	m.alphas = make([][]float64, g)
	m.biases = make([]float64, g)
	total := float64(len(train))
	for c := range classes {
		var alpha mat.VecDense
		if err := m.chol.SolveVecTo(&alpha, mat.NewVecDense(p, m.means[c])); err != nil {
			return nil, ErrSingularCovariance
		}
		m.alphas[c] = make([]float64, p)
		copy(m.alphas[c], alpha.RawVector().Data)
		m.biases[c] = -0.5*floats.Dot(m.means[c], m.alphas[c]) +
			math.Log(float64(m.counts[c])/total)
	}

	return m, nil
}

// predict returns the class index with the highest discriminant score;
// ties break to the lower index for determinism.
func (m *model) predict(x []float64) int {
	best, bestScore := 0, math.Inf(-1)
	for c := range m.alphas {
		score := floats.Dot(x, m.alphas[c]) + m.biases[c]
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	return best
}

// axes returns up to two discriminant axes: the leading eigenvectors of
// Σ_w⁻¹·Σ_b, unit-normalized with a deterministic sign convention.
func (m *model) axes() ([][]float64, error) {
	p, g := m.p, len(m.means)

	// Between-class scatter of the training class means.
	between := mat.NewDense(p, p, nil)
	diff := make([]float64, p)
	for c := range m.means {
		floats.SubTo(diff, m.means[c], m.grand)
		v := mat.NewVecDense(p, diff)
		var outer mat.Dense
		outer.Outer(float64(m.counts[c]), v, v)
		between.Add(between, &outer)
	}

	// M = Σ_w⁻¹ Σ_b, column by column through the Cholesky solve.
	var ratio mat.Dense
	if err := m.chol.SolveTo(&ratio, between); err != nil {
		return nil, ErrSingularCovariance
	}

	var eig mat.Eigen
	if ok := eig.Factorize(&ratio, mat.EigenRight); !ok {
		return nil, ErrSingularCovariance
	}
	vals := eig.Values(nil)
	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return real(vals[order[a]]) > real(vals[order[b]])
	})

	nAxes := g - 1
	if nAxes > 2 {
		nAxes = 2
	}
	axes := make([][]float64, nAxes)
	for a := 0; a < nAxes; a++ {
		col := order[a]
		axis := make([]float64, p)
		for i := 0; i < p; i++ {
			axis[i] = real(vecs.At(i, col))
		}
		norm := floats.Norm(axis, 2)
		if norm > 0 {
			floats.Scale(1/norm, axis)
		}
		// Sign convention: the largest-magnitude loading is positive.
		best, bestAbs := 0, 0.0
		for i, v := range axis {
			if abs := math.Abs(v); abs > bestAbs {
				best, bestAbs = i, abs
			}
		}
		if axis[best] < 0 {
			floats.Scale(-1, axis)
		}
		axes[a] = axis
	}

	return axes, nil
}

// holdoutProjection fits a visualization model on a deterministic
// stratified split and projects the held-out specimens onto the first
// two discriminant axes. Classes too small to spare a test specimen
// contribute training members only; when no class can spare one, the
// projection is nil.
func holdoutProjection(res *gpa.Result, g *specimen.Grouping, rows [][]float64, classOf []int, classes []string, o options) (*Projection, error) {
	rng := rand.New(rand.NewPCG(o.seed, 1))

	var train, test []int
	for _, name := range classes { // grouping order, deterministic
		members := g.Members(name)
		shuffled := make([]int, len(members))
		for i, p := range rng.Perm(len(members)) {
			shuffled[i] = members[p]
		}

		nTest := int(math.Round(o.holdout * float64(len(members))))
		if nTest < 1 {
			nTest = 1
		}
		if len(members)-nTest < 2 {
			nTest = len(members) - 2
		}
		if nTest < 0 {
			nTest = 0
		}
		test = append(test, shuffled[:nTest]...)
		train = append(train, shuffled[nTest:]...)
	}
	if len(test) == 0 {
		return nil, nil
	}
	sort.Ints(test) // report held-out specimens in set order

	m, err := fitModel(rows, classOf, train, classes, o.ridge)
	if err != nil {
		return nil, err
	}
	axes, err := m.axes()
	if err != nil {
		return nil, err
	}

	ids := res.IDs()
	proj := &Projection{
		IDs:         make([]string, len(test)),
		TrueClasses: make([]string, len(test)),
		Scores:      make([][2]float64, len(test)),
	}
	centered := make([]float64, m.p)
	for i, idx := range test {
		proj.IDs[i] = ids[idx]
		proj.TrueClasses[i] = classes[classOf[idx]]
		floats.SubTo(centered, rows[idx], m.grand)
		for a := range axes {
			proj.Scores[i][a] = floats.Dot(centered, axes[a])
		}
	}

	return proj, nil
}
