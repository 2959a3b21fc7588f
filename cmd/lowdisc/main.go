// Command lowdisc searches for good digital nets and rank-1 lattices.
//
// Examples:
//
//	lowdisc --set-type net --construction polynomial --modulus 7 \
//	        --dimension 2 --figure P2 --weights product:1,1 --exploration cbc
//
//	lowdisc --set-type net --construction explicit --size 4 --dimension 2 \
//	        --figure t-value --weights order:0,1 --exploration random:100 --seed 42
//
//	lowdisc --set-type lattice --size 17 --dimension 3 --figure P2 \
//	        --weights product:1,0.9,0.5 --exploration fast-cbc
//
// Exit codes: 0 success, 1 usage or configuration error, 2 infeasible
// weights, 3 no candidate found.
package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lowdisc/lowdisc/digitalnet"
	"github.com/lowdisc/lowdisc/figures"
	"github.com/lowdisc/lowdisc/kernel"
	"github.com/lowdisc/lowdisc/lattice"
	"github.com/lowdisc/lowdisc/poly2"
	"github.com/lowdisc/lowdisc/search"
	"github.com/lowdisc/lowdisc/weights"
)

func main() {
	app := &cli.App{
		Name:  "lowdisc",
		Usage: "search for low-discrepancy digital nets and rank-1 lattices",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "set-type", Value: "net", Usage: "net | lattice"},
			&cli.StringFlag{Name: "construction", Value: "sobol", Usage: "sobol | polynomial | explicit (nets)"},
			&cli.IntFlag{Name: "size", Value: 8, Usage: "m (2^m points) for sobol/explicit nets, n for lattices"},
			&cli.Uint64Flag{Name: "modulus", Usage: "integer encoding of the modulus polynomial (polynomial nets)"},
			&cli.IntFlag{Name: "dimension", Value: 2, Usage: "number of coordinates"},
			&cli.IntFlag{Name: "interlacing", Value: 1, Usage: "interlacing factor"},
			&cli.StringFlag{Name: "figure", Value: "t-value", Usage: "t-value | P<alpha> | B<alpha> | IA<alpha>"},
			&cli.StringFlag{Name: "norm-type", Value: "2", Usage: "norm exponent q, or 'inf'"},
			&cli.StringFlag{Name: "weights", Value: "product:1", Usage: "product:<γ1,…> | order:<Γ1,…>"},
			&cli.Float64Flag{Name: "weights-power", Value: 1, Usage: "power scale applied to every weight"},
			&cli.StringFlag{Name: "exploration", Value: "full", Usage: "full | random:<tries> | cbc | fast-cbc"},
			&cli.Int64Flag{Name: "seed", Value: 0, Usage: "random exploration seed (0 = fixed default)"},
			&cli.BoolFlag{Name: "early-abort", Usage: "abort candidates against the best merit so far"},
			&cli.BoolFlag{Name: "multilevel", Usage: "embedded (multilevel) point sets"},
			&cli.StringFlag{Name: "combiner", Value: "max", Usage: "max | sum | level:<k> (multilevel)"},
			&cli.StringFlag{Name: "output", Value: "human", Usage: "human | machine"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "lowdisc:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	opts, err := parseExploration(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	w, err := parseWeights(c.String("weights"), c.Float64("weights-power"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	q, err := parseNorm(c.String("norm-type"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.String("set-type") == "lattice" {
		return runLattice(c, opts, w, q)
	}

	return runNet(c, opts, w, q)
}

func runNet(c *cli.Context, opts search.Options, w weights.Weights, q float64) error {
	interlacing := c.Int("interlacing")
	dim := c.Int("dimension") * interlacing
	cons, err := parseConstruction(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	figure, err := parseNetFigure(c, w, q, interlacing)
	if err != nil {
		if errors.Is(err, weights.ErrInfiniteSupport) || errors.Is(err, figures.ErrConfiguration) {
			return cli.Exit(err.Error(), 2)
		}

		return cli.Exit(err.Error(), 1)
	}

	task, err := search.NewNetSearch(cons, dim, figure, opts)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	res, err := task.Execute()
	if errors.Is(err, search.ErrNoCandidate) {
		return cli.Exit("no suitable candidate found", 3)
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.String("output") == "machine" {
		fmt.Print(res.Net.Format(digitalnet.FormatMachine, interlacing))
		fmt.Printf("%.17g\n", res.Merit)

		return nil
	}
	fmt.Println(task.Format())
	fmt.Printf("Best merit: %.12g (evaluated %d, aborted %d)\n",
		res.Merit, task.Observer().Evaluations(), task.Observer().Aborts())
	fmt.Print(res.Net.Format(digitalnet.FormatHuman, interlacing))

	return nil
}

func runLattice(c *cli.Context, opts search.Options, w weights.Weights, q float64) error {
	rule, err := lattice.NewRule(uint64(c.Int("size")))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	kern, err := parseKernel(c.String("figure"), c.Int("interlacing"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	figure, err := figures.NewCoordUniform(kern, w, q)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	task, err := search.NewLatticeSearch(rule, c.Int("dimension"), figure, opts)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	res, err := task.Execute()
	if errors.Is(err, search.ErrNoCandidate) {
		return cli.Exit("no suitable candidate found", 3)
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	machine := c.String("output") == "machine"
	if machine {
		fmt.Print(res.Lattice.Format(true))
		fmt.Printf("%.17g\n", res.Merit)

		return nil
	}
	fmt.Println(task.Format())
	fmt.Printf("Best merit: %.12g\n", res.Merit)
	fmt.Print(res.Lattice.Format(false))

	return nil
}

func parseExploration(c *cli.Context) (search.Options, error) {
	opts := search.DefaultOptions()
	opts.Seed = c.Int64("seed")
	opts.EarlyAbortion = c.Bool("early-abort")

	spec := c.String("exploration")
	switch {
	case spec == "full":
		opts.Strategy = search.Exhaustive
	case spec == "cbc":
		opts.Strategy = search.CBC
	case spec == "fast-cbc":
		opts.Strategy = search.FastCBC
	case strings.HasPrefix(spec, "random:"):
		tries, err := strconv.Atoi(strings.TrimPrefix(spec, "random:"))
		if err != nil || tries < 1 {
			return opts, fmt.Errorf("invalid exploration %q", spec)
		}
		opts.Strategy = search.Random
		opts.NbTries = tries
	default:
		return opts, fmt.Errorf("unknown exploration %q", spec)
	}

	return opts, nil
}

func parseConstruction(c *cli.Context) (digitalnet.Construction, error) {
	m := c.Int("size")
	switch c.String("construction") {
	case "sobol":
		return digitalnet.NewSobol(m)
	case "polynomial":
		enc := c.Uint64("modulus")
		if enc == 0 {
			return nil, errors.New("polynomial construction needs --modulus")
		}

		return digitalnet.NewPolynomial(poly2.FromInt(enc))
	case "explicit":
		embedding := digitalnet.Unilevel
		if c.Bool("multilevel") {
			embedding = digitalnet.Multilevel
		}

		return digitalnet.NewExplicit(m, m, embedding)
	default:
		return nil, fmt.Errorf("unknown construction %q", c.String("construction"))
	}
}

func parseNetFigure(c *cli.Context, w weights.Weights, q float64, interlacing int) (search.NetFigure, error) {
	name := c.String("figure")
	if name == "t-value" {
		if c.Bool("multilevel") {
			comb, err := parseCombiner(c.String("combiner"))
			if err != nil {
				return nil, err
			}

			return figures.NewMultilevelTValueFigure(w, q, comb)
		}

		return figures.NewTValueFigure(w, q)
	}
	kern, err := parseKernel(name, interlacing)
	if err != nil {
		return nil, err
	}

	return figures.NewCoordUniform(kern, w, q)
}

func parseKernel(name string, interlacing int) (kernel.Kernel, error) {
	switch {
	case strings.HasPrefix(name, "IA"):
		alpha, err := strconv.Atoi(strings.TrimPrefix(name, "IA"))
		if err != nil {
			return nil, fmt.Errorf("invalid figure %q", name)
		}

		return kernel.NewIAAlpha(alpha, interlacing)
	case strings.HasPrefix(name, "P"):
		alpha, err := strconv.Atoi(strings.TrimPrefix(name, "P"))
		if err != nil {
			return nil, fmt.Errorf("invalid figure %q", name)
		}

		return kernel.NewPAlpha(alpha)
	case strings.HasPrefix(name, "B"):
		alpha, err := strconv.Atoi(strings.TrimPrefix(name, "B"))
		if err != nil {
			return nil, fmt.Errorf("invalid figure %q", name)
		}

		return kernel.NewBAlpha(alpha)
	default:
		return nil, fmt.Errorf("unknown figure %q", name)
	}
}

func parseCombiner(spec string) (figures.Combiner, error) {
	switch {
	case spec == "max":
		return figures.MaxCombiner, nil
	case spec == "sum":
		return figures.SumCombiner, nil
	case strings.HasPrefix(spec, "level:"):
		level, err := strconv.Atoi(strings.TrimPrefix(spec, "level:"))
		if err != nil || level < 1 {
			return nil, fmt.Errorf("invalid combiner %q", spec)
		}

		return figures.SelectCombiner(level), nil
	default:
		return nil, fmt.Errorf("unknown combiner %q", spec)
	}
}

func parseWeights(spec string, power float64) (weights.Weights, error) {
	kind, list, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("invalid weights %q", spec)
	}
	var gammas []float64
	for _, part := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q", part)
		}
		gammas = append(gammas, v)
	}
	var w weights.Weights
	switch kind {
	case "product":
		w = weights.NewProduct(gammas)
	case "order":
		w = weights.NewOrderDependent(gammas)
	default:
		return nil, fmt.Errorf("unknown weight shape %q", kind)
	}
	if power != 1 {
		w = weights.NewScaled(w, power)
	}

	return w, nil
}

func parseNorm(spec string) (float64, error) {
	if spec == "inf" {
		return math.Inf(1), nil
	}
	q, err := strconv.ParseFloat(spec, 64)
	if err != nil || q < 1 {
		return 0, fmt.Errorf("invalid norm type %q", spec)
	}

	return q, nil
}
