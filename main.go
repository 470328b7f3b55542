package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"trihash/dbg"
	"trihash/index"
	"trihash/io"
	"trihash/mesh"
	"trihash/storage"
	"trihash/web"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging     string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version     VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	IndexFolder string      `help:"The folder of the index store." default:"trihash-index"`
	Import      struct {
		Input      string `help:"The input file. Either .geojson, .osm or .pbf." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Resolution int    `help:"The grid resolution, i.e. the number of cells per axis." default:"64"`
	} `cmd:"" help:"Builds the triangle grid index for the given geometry file."`
	Query struct {
		Points  string `help:"A .geojson file with the query points." placeholder:"<points-file>" arg:"" type:"existingfile"`
		Output  string `help:"The output file for the candidate pairs." default:"candidates.geojson"`
		Threads int    `help:"Number of threads used for the query." default:"3"`
	} `cmd:"" help:"Returns the candidate triangles for the given query points."`
	Server struct {
		Port        string `help:"The port the server listens on." default:"8080"`
		SslCertFile string `help:"The certificate file for TLS."`
		SslKeyFile  string `help:"The key file for TLS."`
	} `cmd:"" help:"Starts an HTTP server answering point queries against the index."`
	Render struct {
		Output string `help:"The PNG file to render to." default:"grid.png"`
	} `cmd:"" help:"Renders the cell occupancy of the index to an image."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("trihash"),
		kong.Description("A uniform grid index for 2D mesh triangles with point-in-cell candidate queries."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	switch ctx.Command() {
	case "import <input>":
		importGeometry(cli.Import.Input, cli.Import.Resolution, cli.IndexFolder)
	case "query <points>":
		queryPoints(cli.Query.Points, cli.Query.Output, cli.Query.Threads, cli.IndexFolder)
	case "server":
		if cli.Server.SslCertFile != "" && cli.Server.SslKeyFile != "" {
			web.StartServerTls(cli.Server.Port, cli.Server.SslCertFile, cli.Server.SslKeyFile, cli.IndexFolder)
		} else {
			web.StartServer(cli.Server.Port, cli.IndexFolder)
		}
	case "render":
		renderIndex(cli.Render.Output, cli.IndexFolder)
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}

func importGeometry(inputFile string, resolution int, indexBaseFolder string) {
	var m *mesh.Mesh
	var err error

	if strings.HasSuffix(inputFile, ".geojson") {
		m, err = mesh.FromGeoJsonFile(inputFile)
	} else {
		m, err = mesh.FromOsmFile(inputFile)
	}
	sigolo.FatalCheck(err)

	normalizer := mesh.NewNormalizer(m.Extent, resolution)
	grid, err := index.BuildTriangleIndex(normalizer.ToGridTriangles(m.Triangles), resolution)
	sigolo.FatalCheck(err)

	err = storage.Save(indexBaseFolder, grid, m)
	sigolo.FatalCheck(err)

	sigolo.Infof("Indexed %d triangles with resolution %d", len(m.Triangles), resolution)
}

func queryPoints(pointsFile string, outputFile string, numThreads int, indexBaseFolder string) {
	store, err := storage.Load(indexBaseFolder)
	sigolo.FatalCheck(err)

	points, err := io.ReadPointsFromGeoJsonFile(pointsFile)
	sigolo.FatalCheck(err)

	gridPoints := store.Normalizer.ToGridPoints(points)
	pointIndices, triangleIndices := store.Grid.QueryParallel(gridPoints, numThreads)

	sigolo.Infof("Found %d candidate pairs for %d points", len(pointIndices), len(points))

	err = io.WriteCandidatesAsGeoJsonFile(outputFile, pointIndices, triangleIndices, points)
	sigolo.FatalCheck(err)
}

func renderIndex(outputFile string, indexBaseFolder string) {
	store, err := storage.Load(indexBaseFolder)
	sigolo.FatalCheck(err)

	gridTriangles := store.Normalizer.ToGridTriangles(store.Mesh.Triangles)
	err = dbg.RenderGrid(store.Grid, gridTriangles, outputFile)
	sigolo.FatalCheck(err)
}
