// Command rasterimport converts an ESRI ASCII grid in geographic
// coordinates into the Parquet cell table the path finder loads, and prints
// the geotransform to configure for it.
//
//	rasterimport -in elevation.asc -out data/elevation.parquet
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/icydoge/avaroute/internal/adapters/raster"
	"github.com/icydoge/avaroute/internal/pkg/logging"
)

func main() {
	in := flag.String("in", "", "ESRI ASCII grid (.asc)")
	out := flag.String("out", "", "Parquet output path")
	flag.Parse()

	logging.Setup("avaroute-rasterimport", "info", "text")

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	grid, header, err := raster.ReadASC(f)
	f.Close()
	if err != nil {
		log.Fatalf("%s: %v", *in, err)
	}
	slog.Info("grid read", "path", *in, "cols", header.Cols, "rows", header.Rows, "cellsize", header.CellSize)

	if err := raster.WriteParquet(*out, grid, header.NoData); err != nil {
		log.Fatalf("write: %v", err)
	}

	t := header.GeoTransform()
	fmt.Printf("path: %s\norigin_lon: %v\norigin_lat: %v\npixel_width: %v\npixel_height: %v\n",
		*out, t.OriginLon, t.OriginLat, t.PixelWidth, t.PixelHeight)
}
