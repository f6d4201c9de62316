package gp

import (
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/core/model"
	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
	"github.com/YuminosukeSato/gaussproc/pkg/matio"
)

const (
	opSave = "GaussianProcess.Save"
	opLoad = "GaussianProcess.Load"
)

// Files はパス接頭辞 P から導かれる四つの保存ファイルです。
type Files struct {
	// RegressionVectors は n x outputDim の回帰係数
	RegressionVectors string
	// SampleVectors は inputDim x n (入力を列に並べたもの)
	SampleVectors string
	// LabelVectors は outputDim x n
	LabelVectors string
	// Parameters はカーネル名、パラメータ、sigma、次元、デバッグフラグの一行
	Parameters string
}

// FilesFor は prefix に対応するファイル名を返します。
func FilesFor(prefix string) Files {
	return Files{
		RegressionVectors: prefix + "-RegressionVectors.txt",
		SampleVectors:     prefix + "-SampleVectors.txt",
		LabelVectors:      prefix + "-LabelVectors.txt",
		Parameters:        prefix + "-ParameterFile.txt",
	}
}

func (f Files) all() []string {
	return []string{f.RegressionVectors, f.SampleVectors, f.LabelVectors, f.Parameters}
}

// Save はモデルを prefix の四つのファイルに書き出します。
// Dirty の場合は先に学習し、学習できなければ PreconditionError を返します。
func (g *GaussianProcess[T]) Save(prefix string) error {
	if err := g.ensureReady(); err != nil {
		return errors.NewPreconditionError(opSave, "model cannot be trained", err)
	}

	files := FilesFor(prefix)
	bits := model.BitSize[T]()
	g.trace("Saving gaussian process",
		log.OperationKey, log.OperationSave,
		log.PathKey, prefix,
	)

	if err := matio.WriteMatrix(files.RegressionVectors, g.coeffs, bits); err != nil {
		return err
	}
	if err := matio.WriteMatrix(files.SampleVectors, columns(g.samples, g.inputDim), bits); err != nil {
		return err
	}
	if err := matio.WriteMatrix(files.LabelVectors, columns(g.labels, g.outputDim), bits); err != nil {
		return err
	}
	if err := os.WriteFile(files.Parameters, []byte(g.parameterLine()+"\n"), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", files.Parameters)
	}
	return nil
}

// parameterLine は
// <kernel_name> <num_params> <p_0> ... <p_k-1> <sigma> <input_dim> <output_dim> <debug 0|1>
// を返します。
func (g *GaussianProcess[T]) parameterLine() string {
	bits := model.BitSize[T]()
	params := g.kernel.Parameters()

	fields := make([]string, 0, len(params)+6)
	fields = append(fields, g.kernel.Name(), strconv.Itoa(len(params)))
	for _, p := range params {
		fields = append(fields, strconv.FormatFloat(float64(p), 'g', -1, bits))
	}
	debug := "0"
	if g.debug {
		debug = "1"
	}
	fields = append(fields,
		strconv.FormatFloat(float64(g.sigma), 'g', -1, bits),
		strconv.Itoa(g.inputDim),
		strconv.Itoa(g.outputDim),
		debug,
	)
	return strings.Join(fields, " ")
}

// Load は prefix の四つのファイルからモデルを復元します。
//
// すべてのファイルを一時的な状態に読み込んで検証し、成功した場合にのみ
// レシーバに反映します。失敗時にレシーバは変更されません。
// 読み込んだモデルは再計算せずに Ready になり、コア行列は保持しません。
func (g *GaussianProcess[T]) Load(prefix string) error {
	snap, err := readSnapshot[T](prefix)
	if err != nil {
		g.logger.Error("Load failed", err, log.OperationKey, log.OperationLoad, log.PathKey, prefix)
		return err
	}
	g.commit(snap)
	g.trace("Loaded gaussian process",
		log.OperationKey, log.OperationLoad,
		log.PathKey, prefix,
		log.KernelKey, snap.kernel.Name(),
		log.SamplesKey, len(snap.samples),
	)
	return nil
}

// Load は prefix から新しいモデルを復元します。opts のデバッグ設定は
// パラメータファイルの値で上書きされます。
func Load[T model.Float](prefix string, opts ...Option) (*GaussianProcess[T], error) {
	snap, err := readSnapshot[T](prefix)
	if err != nil {
		return nil, err
	}
	g, err := New(snap.kernel, opts...)
	if err != nil {
		return nil, err
	}
	g.commit(snap)
	return g, nil
}

// snapshot は読み込み途中の状態です。
type snapshot[T model.Float] struct {
	kernel    kernel.Kernel[T]
	sigma     T
	samples   [][]T
	labels    [][]T
	inputDim  int
	outputDim int
	coeffs    *mat.Dense
	debug     bool
}

func (g *GaussianProcess[T]) commit(s *snapshot[T]) {
	g.kernel = s.kernel
	g.sigma = s.sigma
	g.samples = s.samples
	g.labels = s.labels
	g.inputDim = s.inputDim
	g.outputDim = s.outputDim
	g.coeffs = s.coeffs
	g.core = nil
	g.debug = s.debug
	g.state.MarkReady()
}

func readSnapshot[T model.Float](prefix string) (*snapshot[T], error) {
	files := FilesFor(prefix)
	for _, path := range files.all() {
		if err := matio.CheckFile(path); err != nil {
			return nil, err
		}
	}

	snap, err := readParameters[T](files.Parameters)
	if err != nil {
		return nil, err
	}

	bits := model.BitSize[T]()
	rv, err := matio.ReadMatrix(files.RegressionVectors, bits)
	if err != nil {
		return nil, err
	}
	sv, err := matio.ReadMatrix(files.SampleVectors, bits)
	if err != nil {
		return nil, err
	}
	lv, err := matio.ReadMatrix(files.LabelVectors, bits)
	if err != nil {
		return nil, err
	}

	svRows, n := sv.Dims()
	lvRows, lvCols := lv.Dims()
	rvRows, rvCols := rv.Dims()
	switch {
	case svRows != snap.inputDim:
		return nil, inconsistent(files.SampleVectors, "rows", svRows, "input dimension", snap.inputDim)
	case lvRows != snap.outputDim:
		return nil, inconsistent(files.LabelVectors, "rows", lvRows, "output dimension", snap.outputDim)
	case lvCols != n:
		return nil, inconsistent(files.LabelVectors, "columns", lvCols, "sample count", n)
	case rvRows != n:
		return nil, inconsistent(files.RegressionVectors, "rows", rvRows, "sample count", n)
	case rvCols != snap.outputDim:
		return nil, inconsistent(files.RegressionVectors, "columns", rvCols, "output dimension", snap.outputDim)
	}

	snap.samples = vectors[T](sv)
	snap.labels = vectors[T](lv)
	snap.coeffs = rv
	return snap, nil
}

func inconsistent(path, what string, got int, against string, want int) error {
	return errors.NewPersistenceCorruptError(path, 0,
		strconv.Itoa(got)+" "+what+" do not match the "+against+" "+strconv.Itoa(want))
}

// readParameters はパラメータファイルを解析し、カーネルを復元します。
func readParameters[T model.Float](path string) (*snapshot[T], error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewPersistenceMissingError(path, err)
	}

	var lines []string
	for _, l := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) != 1 {
		return nil, errors.NewPersistenceCorruptError(path, 0,
			"expected a single parameter line, found "+strconv.Itoa(len(lines)))
	}
	fields := strings.Fields(lines[0])
	corrupt := func(reason string) error {
		return errors.NewPersistenceCorruptError(path, 1, reason)
	}

	if len(fields) < 2 {
		return nil, corrupt("missing kernel name or parameter count")
	}
	name := fields[0]
	k, err := strconv.Atoi(fields[1])
	if err != nil || k < 0 || k > len(fields) {
		return nil, corrupt("invalid parameter count " + strconv.Quote(fields[1]))
	}
	if want := 2 + k + 4; len(fields) != want {
		return nil, corrupt("expected " + strconv.Itoa(want) + " fields, found " + strconv.Itoa(len(fields)))
	}

	bits := model.BitSize[T]()
	parseScalar := func(tok string) (T, error) {
		v, err := strconv.ParseFloat(tok, bits)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, corrupt("invalid number " + strconv.Quote(tok))
		}
		return T(v), nil
	}

	params := make([]T, k)
	for i := range params {
		if params[i], err = parseScalar(fields[2+i]); err != nil {
			return nil, err
		}
	}
	rest := fields[2+k:]

	sigma, err := parseScalar(rest[0])
	if err != nil {
		return nil, err
	}
	if validateSigma(float64(sigma)) != nil {
		return nil, corrupt("invalid sigma " + strconv.Quote(rest[0]))
	}
	inputDim, err := strconv.Atoi(rest[1])
	if err != nil || inputDim < 1 {
		return nil, corrupt("invalid input dimension " + strconv.Quote(rest[1]))
	}
	outputDim, err := strconv.Atoi(rest[2])
	if err != nil || outputDim < 1 {
		return nil, corrupt("invalid output dimension " + strconv.Quote(rest[2]))
	}
	var debug bool
	switch rest[3] {
	case "0":
	case "1":
		debug = true
	default:
		return nil, corrupt("invalid debug flag " + strconv.Quote(rest[3]))
	}

	kern, err := kernel.FromParameters(name, params)
	if err != nil {
		return nil, err
	}

	return &snapshot[T]{
		kernel:    kern,
		sigma:     sigma,
		inputDim:  inputDim,
		outputDim: outputDim,
		debug:     debug,
	}, nil
}

// columns は各ベクトルを列に並べた dim x n 行列を返します。
func columns[T model.Float](vs [][]T, dim int) *mat.Dense {
	m := mat.NewDense(dim, len(vs), nil)
	for j, v := range vs {
		for i, x := range v {
			m.Set(i, j, float64(x))
		}
	}
	return m
}

// vectors は columns の逆変換です。
func vectors[T model.Float](m *mat.Dense) [][]T {
	r, c := m.Dims()
	out := make([][]T, c)
	for j := range out {
		v := make([]T, r)
		for i := range v {
			v[i] = T(m.At(i, j))
		}
		out[j] = v
	}
	return out
}
