// Package rewrite maps directory-style request paths onto the index.html
// files of a statically exported site.
package rewrite

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// IndexFile is appended to directory paths.
const IndexFile = "index.html"

// Rewrite returns the object key served for uri.
//
//	"/"           -> "/index.html"
//	"/words/"     -> "/words/index.html"
//	"/20251207"   -> "/20251207/index.html"
//	"/a.b/c"      -> "/a.b/c/index.html"
//	"/styles.css" -> "/styles.css"
func Rewrite(uri string) string {
	if strings.HasSuffix(uri, "/") {
		return uri + IndexFile
	}
	if !strings.Contains(uri, ".") || strings.LastIndex(uri, "/") > strings.LastIndex(uri, ".") {
		return uri + "/" + IndexFile
	}
	return uri
}

// PageURL is the public link of the word page for date.
func PageURL(baseURL, date string) string {
	return strings.TrimRight(baseURL, "/") + "/" + date
}

// Middleware rewrites r.URL.Path before calling next. RawPath is
// cleared so the rewritten Path is authoritative.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rewritten := Rewrite(r.URL.Path)
		if rewritten != r.URL.Path {
			r2 := r.Clone(r.Context())
			r2.URL.Path = rewritten
			r2.URL.RawPath = ""
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}

// ObjectServer serves files of root by exact key, the way an object
// store behind the edge does. Directories and missing keys are 404;
// there is no directory listing and no index.html redirect.
func ObjectServer(root fs.FS) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			http.NotFound(w, r)
			return
		}

		f, err := root.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		content, ok := f.(io.ReadSeeker)
		if !ok {
			http.Error(w, "file not seekable", http.StatusInternalServerError)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), content)
	})
}
