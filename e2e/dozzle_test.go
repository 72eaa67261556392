package e2e

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const dozzlePage = `<!doctype html>
<html>
<head><title>Containers - Dozzle</title></head>
<body>
<aside>
<p class="menu-label"><a href="/" aria-current="page"><span id="menu">Containers</span></a></p>
<a href="#" onclick="document.getElementById('about').style.display='block'; return false">Settings</a>
</aside>
<main>
<h2 id="about" style="display:none">About</h2>
<div id="modal"></div>
</main>
<script>
if (navigator.language.startsWith("es")) {
	document.getElementById("menu").textContent = "Contenedores";
}
document.addEventListener("keydown", (e) => {
	if ((e.ctrlKey || e.metaKey) && e.key === "k") {
		document.getElementById("modal").innerHTML = '<div class="modal"><input placeholder="Search containers (⌘ + k, ⌃k)"></div>';
	}
});
</script>
</body>
</html>`

// newDozzle serves the routes the acceptance scenarios and the readiness probe rely on
func newDozzle(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<pre>v8.0.0</pre>"))
	})
	mux.HandleFunc("/show", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/container/"+strings.ToLower(r.URL.Query().Get("name")), http.StatusFound)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(dozzlePage))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}
