package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	ownIo "trihash/io"
	"trihash/storage"
)

func StartServer(port string, indexBaseFolder string) {
	r := initRouter(indexBaseFolder)
	sigolo.Infof("Start server without TLS support on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

func StartServerTls(port string, certFile string, keyFile string, indexBaseFolder string) {
	r := initRouter(indexBaseFolder)
	sigolo.Infof("Start server with TLS support on port %s", port)
	err := http.ListenAndServeTLS(":"+port, certFile, keyFile, r)
	sigolo.FatalCheck(err)
}

func initRouter(indexBaseFolder string) *mux.Router {
	store, err := storage.Load(indexBaseFolder)
	sigolo.FatalCheck(err)

	r := mux.NewRouter()
	r.HandleFunc("/query", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")

		bodyBytes, err := io.ReadAll(request.Body)
		if err != nil {
			sigolo.Errorf("Error reading HTTP body of request to '/query': %+v", err)
			writer.WriteHeader(http.StatusInternalServerError)
			_, err = writer.Write([]byte("Error reading HTTP body."))
			if err != nil {
				sigolo.Errorf("Error writing error response: %+v", err)
			}
			return
		}

		// The body is a plain JSON array of [x, y] coordinate pairs in the
		// mesh's coordinate space.
		var points []orb.Point
		err = json.Unmarshal(bodyBytes, &points)
		if err != nil {
			sigolo.Errorf("Error parsing query points: %+v", err)
			writer.WriteHeader(http.StatusBadRequest)
			_, err = writer.Write([]byte(fmt.Sprintf("Error parsing query points: %+v", err)))
			if err != nil {
				sigolo.Errorf("Error writing error response: %+v", err)
			}
			return
		}

		sigolo.Debugf("Query with %d points", len(points))

		gridPoints := store.Normalizer.ToGridPoints(points)
		pointIndices, triangleIndices := store.Grid.Query(gridPoints)

		sigolo.Debugf("Found %d candidate pairs", len(pointIndices))

		err = ownIo.WriteCandidatesAsGeoJson(pointIndices, triangleIndices, points, writer)
		if err != nil {
			sigolo.Errorf("Error writing query result: %+v", err)
			writer.WriteHeader(http.StatusInternalServerError)
			_, err = writer.Write([]byte(fmt.Sprintf("Error writing query result: %+v", err)))
			if err != nil {
				sigolo.Errorf("Error writing error response: %+v", err)
			}
			return
		}
	}).Methods(http.MethodPost)

	return r
}
