package precastro

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sesameM87 = `# M 87     #Q22523840
#=Simbad:  1   162ms
%@ 2600545
%I.0 M  87
%J 187.70593075958 +12.39112324756 = 12:30:49.42, +12:23:28.0
%J.E [ 0.300 0.260 90] A 2020yCat.1350....0G
%P -0.029 -0.068 [1.164 0.885 90] A 2020yCat.1350....0G
%X 0.4133 [0.4602] A 2020yCat.1350....0G
%V v 1284 [5] D 2011MNRAS.413..813C
#B 17
`

func TestFromSesameService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/-oI/SNV" {
			t.Errorf("request path = %q", r.URL.Path)
		}
		if q := r.URL.RawQuery; q != "M+87" {
			t.Errorf("request query = %q", q)
		}
		io.WriteString(w, sesameM87)
	}))
	defer srv.Close()

	o := NewObject("")
	if err := o.FromSesameService(srv.Client(), srv.URL, "M 87"); err != nil {
		t.Fatal(err)
	}

	if o.Name() != "M 87" {
		t.Errorf("name = %q", o.Name())
	}
	near(t, "ra", o.RA(), 187.70593075958*D2R, 1e-12)
	near(t, "dec", o.Dec(), 12.39112324756*D2R, 1e-12)
	pmRA, pmDec := o.ProperMotion()
	near(t, "pm ra", pmRA, -0.029, 1e-12)
	near(t, "pm dec", pmDec, -0.068, 1e-12)
	near(t, "parallax", o.Parallax(), 0.4133, 1e-12)
	near(t, "rv", o.RadialVelocity(), 1284, 1e-12)
}

func TestFromSesameServiceKeepsName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "%J 10.0 -5.0 = x\n")
	}))
	defer srv.Close()

	o := NewObject("my alias")
	if err := o.FromSesameService(srv.Client(), srv.URL, "NGC 1"); err != nil {
		t.Fatal(err)
	}
	if o.Name() != "my alias" {
		t.Errorf("name = %q, want existing name kept", o.Name())
	}
	near(t, "ra", o.RA(), 10.0*D2R, 1e-12)
}

func TestFromSesameServiceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "# nothing\n#!SIMBAD: Identifier not found in the database\n")
	}))
	defer srv.Close()

	o := NewObject("")
	err := o.FromSesameService(srv.Client(), srv.URL, "NOT A STAR")
	if err == nil || !strings.Contains(err.Error(), "Identifier not found") {
		t.Errorf("error = %v, want resolver failure text", err)
	}
}

func TestFromSesameServiceNoPosition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "%P 1.0 2.0\n")
	}))
	defer srv.Close()

	o := NewObject("")
	err := o.FromSesameService(srv.Client(), srv.URL, "X")
	if err == nil || !strings.Contains(err.Error(), "no position") {
		t.Errorf("error = %v, want no-position failure", err)
	}
}

func TestFromSesameServiceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	o := NewObject("")
	err := o.FromSesameService(srv.Client(), srv.URL, "X")
	if err == nil || !strings.Contains(err.Error(), "HTTP status") {
		t.Errorf("error = %v, want HTTP status failure", err)
	}
}

func TestFromSesameServiceMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "%J ten minus-five\n")
	}))
	defer srv.Close()

	o := NewObject("")
	err := o.FromSesameService(srv.Client(), srv.URL, "X")
	if err == nil || !strings.Contains(err.Error(), "malformed %J") {
		t.Errorf("error = %v, want malformed-line failure", err)
	}
}
