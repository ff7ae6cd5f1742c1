package module

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"fertilitydash/internal/core/fertility"
	"fertilitydash/internal/core/figures"
	modkit "fertilitydash/internal/modkit"
	"fertilitydash/internal/modkit/module"
	"fertilitydash/internal/modkit/swaggerkit"
	phttp "fertilitydash/internal/platform/net/http"
	kit "fertilitydash/internal/platform/testkit"
	"fertilitydash/internal/services/api/fertility/domain"

	"github.com/go-chi/chi/v5"
)

func deps() modkit.Deps {
	return modkit.Deps{
		Figures: figures.DefaultConfig(),
		Source: fertility.SourceFunc(func(context.Context, fertility.Query) (fertility.SeriesSet, error) {
			s := fertility.NewSeriesSet()
			s.Append("Germany", 2018, kit.Float(1.57))
			s.Append("Germany", 1990, kit.Float(1.45))
			return s, nil
		}),
	}
}

func TestNew_Defaults(t *testing.T) {
	m := New(deps()).(*Module)
	if m.Name() != "fertility" {
		t.Fatalf("name = %q", m.Name())
	}
	if m.Prefix() != "/fertility" {
		t.Fatalf("prefix = %q", m.Prefix())
	}
}

func TestNew_RequiresSource(t *testing.T) {
	kit.MustPanic(t, func() { New(modkit.Deps{}) })
}

func TestPorts_ExposeService(t *testing.T) {
	m := New(deps())
	svc, ok := module.PortsOf[domain.ServicePort](m)
	if !ok {
		t.Fatal("expected a ServicePort in module ports")
	}
	out, err := svc.Table(context.Background(), domain.TableInput{})
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("rows = %d", len(out.Rows))
	}
}

func TestMountRoutes_ServesUnderPrefix(t *testing.T) {
	mux := chi.NewRouter()
	New(deps(), modkit.WithPrefix("/tfr")).MountRoutes(phttp.AdaptChi(mux))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/tfr/figures/1", nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	kit.MustContain(t, rr.Body.String(), "Fertility Rate in Germany (1990-2018)")
}

func TestNew_SwaggerRegistersDocs(t *testing.T) {
	kit.Serial(t, "swagger")
	swaggerkit.Reset()
	t.Cleanup(swaggerkit.Reset)

	New(deps(), modkit.WithSwagger(true))
	paths := swaggerkit.Spec()["paths"].(map[string]any)
	if _, ok := paths["/fertility/table"]; !ok {
		t.Fatalf("expected /fertility/table in docs, got %v", paths)
	}
}
