// Command ovd2svg builds a Voronoi diagram of random point sites (and
// optionally a polyline through some of them) and renders it to SVG.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"os"

	voronoi "github.com/adam-urbanczyk/openvoronoi"
	"go.uber.org/zap"
)

func main() {
	var (
		n       = flag.Int("n", 50, "number of random point sites")
		far     = flag.Float64("far", 1.0, "far radius enclosing all sites")
		size    = flag.Int("size", 800, "SVG canvas size in pixels")
		seed    = flag.Int64("seed", 1, "random seed")
		chain   = flag.Int("chain", 0, "connect the first N sites with line segments")
		out     = flag.String("o", "diagram.svg", "output file")
		verbose = flag.Bool("v", false, "log insertion progress")
	)
	flag.Parse()

	dia := voronoi.NewDiagram(*far, 10)
	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		dia.SetLogger(logger)
	}

	rng := rand.New(rand.NewSource(*seed))
	handles := make([]int, 0, *n)
	for len(handles) < *n {
		r := 0.7 * *far * math.Sqrt(rng.Float64())
		phi := 2 * math.Pi * rng.Float64()
		p := voronoi.Point{X: r * math.Cos(phi), Y: r * math.Sin(phi)}
		h, err := dia.InsertPointSite(p)
		if err != nil {
			log.Fatalf("insert point: %v", err)
		}
		handles = append(handles, h)
	}
	for i := 0; i+1 < *chain && i+1 < len(handles); i++ {
		if err := dia.InsertLineSite(handles[i], handles[i+1]); err != nil {
			log.Fatalf("insert segment %d-%d: %v", handles[i], handles[i+1], err)
		}
	}
	if !dia.Check() {
		log.Fatal("diagram failed validation")
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	dia.WriteSVG(f, *size)
	log.Printf("%v -> %s", dia, *out)
}
