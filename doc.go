// Package conformal is a small toolkit for conformal prediction: set-valued
// predictions whose error rate is controlled by a significance level ε.
//
// 🚀 What is conformal?
//
//	A Go library and CLI that brings together:
//		• cp       - Transductive Conformal Predictor, p-values, regions, summaries
//		• ncm      - nonconformity measures (k-nearest-neighbours, constants, funcs)
//		• matrix   - dense float and boolean matrices for p-values and regions
//		• labels   - label value ⇄ dense index encoding
//		• dataset  - CSV / XLSX feature tables
//		• config   - YAML + environment configuration with validation
//		• logging  - slog handler for terminal output
//
// ✨ Why conformal prediction?
//
//   - Validity – under exchangeability, P(true label ∉ region) ≤ ε
//   - Model-agnostic – any scorer that ranks strangeness works
//   - Honest output – empty or multi-label regions say "I don't know"
//
// Quick example:
//
//	knn, _ := ncm.NewKNN(1)
//	pred := cp.New[[]float64](knn, cp.WithEpsilon(0.05))
//	_ = pred.Train(X, y)
//	region, _ := pred.Predict(Xnew)
//
// The cpredict command (cmd/cpredict) wraps the same pipeline for tables on
// disk:
//
//	go install github.com/katalvlaran/conformal/cmd/cpredict@latest
//	cpredict predict --train train.csv --test new.csv --epsilon 0.1
package conformal
