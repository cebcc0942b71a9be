package server

import (
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// bannerFileServer serves uploaded banner images from local disk.
// Directory paths 404 instead of listing.
type bannerFileServer struct {
	fileServer http.Handler
	fileSystem fs.FS
}

func newBannerFileServer(dir string) *bannerFileServer {
	fsys := os.DirFS(dir)
	return &bannerFileServer{
		fileServer: http.FileServer(http.FS(fsys)),
		fileSystem: fsys,
	}
}

func (s *bannerFileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	info, err := fs.Stat(s.fileSystem, path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	// Banner keys are never reused, so clients can cache hard.
	w.Header().Set("Cache-Control", "public, max-age=86400")
	s.fileServer.ServeHTTP(w, r)
}
