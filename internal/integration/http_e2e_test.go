//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"asili_experiences/internal/domain"
	mysqlrepo "asili_experiences/internal/storage/mysql"
)

// ---------- helpers ----------
func pstr(s string) *string { return &s }
func pint(i int) *int       { return &i }

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- tiny HTTP around repo (keeps wiring simple) ----------
type testAPI struct{ repo *mysqlrepo.Repo }

func (a *testAPI) experience(w http.ResponseWriter, r *http.Request) {
	// Expect /v1/experiences/{id}
	idStr := strings.TrimPrefix(r.URL.Path, "/v1/experiences/")
	id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}
	ev, err := a.repo.GetExperience(r.Context(), id, lang)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	resp := struct {
		ID        int64   `json:"id"`
		Lang      string  `json:"lang"`
		Title     *string `json:"title"`
		BasePrice int64   `json:"base_price"`
	}{
		ID:        ev.ID,
		Lang:      lang,
		Title:     ev.Title,
		BasePrice: ev.BasePrice,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// ---------- the test ----------
func TestHTTP_EndToEnd_Experience_SW(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=asili",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "asili")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	expID := int64(22002)
	e := domain.Experience{
		ID:         expID,
		PartnerID:  3,
		BasePrice:  350,
		ChildRule:  true,
		PremiumOpt: true,
		Capacity:   pint(8),
		Country:    pstr("KE"),
		Region:     pstr("Laikipia"),
		Currency:   "KES",
		RawJSON:    []byte(`{}`),
	}
	if err := repo.UpsertExperience(ctx, e); err != nil {
		t.Fatalf("UpsertExperience: %v", err)
	}
	if err := repo.UpsertI18n(ctx, domain.ExperienceI18n{
		ExperienceID: expID,
		Lang:         "sw",
		Title:        pstr("Safari ya usiku"),
		Description:  pstr("Maelezo"),
		ExtrasJSON:   []byte(`{}`),
	}); err != nil {
		t.Fatalf("UpsertI18n: %v", err)
	}

	// Spin up minimal HTTP server exposing the one route we need
	api := &testAPI{repo: repo}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/experiences/", api.experience)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	res, err := http.Get(fmt.Sprintf("%s/v1/experiences/%d?lang=sw", ts.URL, expID))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		ID        int64   `json:"id"`
		Lang      string  `json:"lang"`
		Title     *string `json:"title"`
		BasePrice int64   `json:"base_price"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID != expID || body.Lang != "sw" || body.Title == nil || *body.Title != "Safari ya usiku" || body.BasePrice != 350 {
		t.Fatalf("unexpected body: %+v", body)
	}
}
