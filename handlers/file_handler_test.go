package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		Labels []string `json:"labels"`
		Tier   string   `json:"tier"`
	} `json:"data"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func uploadFile(t *testing.T, r http.Handler, content []byte, labels string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if content != nil {
		fw, err := mw.CreateFormFile("file", "jugement.txt")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	if labels != "" {
		require.NoError(t, mw.WriteField("labels", labels))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/classify/file", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestClassifyFile(t *testing.T) {
	clf := &stubClassifier{scores: penalScores}
	r := newTestRouter(t, clf)

	w, resp := uploadFile(t, r, []byte("Le tribunal correctionnel déclare le prévenu coupable."), "Droit pénal, Droit civil")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Droit pénal", "Droit civil"}, resp.Data.Labels)
	assert.Equal(t, "green", resp.Data.Tier)
	assert.Equal(t, 1, clf.calls)
}

func TestClassifyFileAcceptsCommaHeavyText(t *testing.T) {
	clf := &stubClassifier{scores: penalScores}
	r := newTestRouter(t, clf)

	judgment := []byte("Vu le code pénal, le code de procédure pénale, les pièces du dossier,\n" +
		"Attendu que le prévenu, régulièrement cité, ne comparaît pas,\n" +
		"Par ces motifs, le tribunal, statuant publiquement, déclare le prévenu coupable\n")

	w, resp := uploadFile(t, r, judgment, "Droit pénal, Droit civil")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, clf.calls)
}

func TestIsPlainText(t *testing.T) {
	csvLike := []byte("a,b,c\nd,e,f\ng,h,i\n")
	assert.True(t, isPlainText(mimetype.Detect(csvLike)))
	assert.True(t, isPlainText(mimetype.Detect([]byte("Le tribunal statue."))))
	assert.False(t, isPlainText(mimetype.Detect([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))))
}

func TestClassifyFileDefaultsLabels(t *testing.T) {
	r := newTestRouter(t, &stubClassifier{scores: penalScores})

	_, resp := uploadFile(t, r, []byte("Le conseil d'Etat annule l'arrêté."), "")

	require.True(t, resp.Success)
	assert.Equal(t, []string{"Droit pénal", "Droit social", "Droit administratif", "Droit commercial"}, resp.Data.Labels)
}

func TestClassifyFileErrors(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name     string
		content  []byte
		wantCode string
	}{
		{"missing file", nil, "MISSING_FILE"},
		{"binary file", png, "INVALID_FILE"},
		{"too large", bytes.Repeat([]byte("a"), 1024*1024+1), "FILE_TOO_LARGE"},
		{"blank file", []byte("   \n"), "EMPTY_TEXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf := &stubClassifier{scores: penalScores}
			w, resp := uploadFile(t, newTestRouter(t, clf), tt.content, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Zero(t, clf.calls)
		})
	}
}
