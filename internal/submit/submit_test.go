package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rojgari/candidate-intake/internal/config"
	"github.com/rojgari/candidate-intake/internal/formstate"
	"github.com/rojgari/candidate-intake/internal/logging"
	"github.com/rojgari/candidate-intake/internal/types"
	"github.com/rojgari/candidate-intake/internal/validation"
)

type backendCall struct {
	path    string
	payload ProfilePayload
}

// newBackend starts a fake backend whose /candidate-profile handler is
// the given function and records every call.
func newBackend(t *testing.T, create http.HandlerFunc) (*httptest.Server, *[]backendCall) {
	t.Helper()
	calls := &[]backendCall{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /candidate-profile", func(w http.ResponseWriter, r *http.Request) {
		var p ProfilePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		*calls = append(*calls, backendCall{path: r.URL.Path, payload: p})
		create(w, r)
	})
	mux.HandleFunc("POST /candidate-profile/{id}/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("profile_photo")
		require.NoError(t, err)
		*calls = append(*calls, backendCall{path: r.URL.Path})
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, calls
}

func newSubmitter(t *testing.T, baseURL string) (*Submitter, *formstate.Store) {
	t.Helper()
	engine := validation.New()
	log := logging.NewTestLogger(t)
	d := NewDispatcher(&config.BackendConfig{BaseURL: baseURL, Timeout: 5 * time.Second}, log)
	store := formstate.New(engine, log, formstate.WithDebounce(0))
	t.Cleanup(store.Stop)
	return NewSubmitter(engine, d, log), store
}

func okCreate(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"data":{"id":"prof-123"}}`))
}

func TestSubmitSuccessResetsStore(t *testing.T) {
	srv, calls := newBackend(t, okCreate)
	sub, store := newSubmitter(t, srv.URL)
	store.Load(submittableForm())

	out := sub.Submit(context.Background(), store)
	require.True(t, out.Success, "message: %s", out.Message)
	assert.Equal(t, "prof-123", out.ProfileID)
	assert.Equal(t, "Profile created successfully for Asha Patil!", out.Message)
	assert.Empty(t, out.Warning)
	require.Len(t, *calls, 1)

	// Round-trip: the store is back to initial defaults.
	f := store.Snapshot()
	assert.Empty(t, f.FirstName)
	assert.Len(t, f.EducationList, 1)
	assert.True(t, f.EducationList[0].IsBlank())
	assert.False(t, f.DeclarationChecked)
	assert.Empty(t, store.Errors())
}

func TestSubmitNormalizesPhonesBeforeDispatch(t *testing.T) {
	srv, calls := newBackend(t, okCreate)
	sub, store := newSubmitter(t, srv.URL)
	f := submittableForm()
	f.Phone = "9876543210"
	store.Load(f)

	out := sub.Submit(context.Background(), store)
	require.True(t, out.Success, "message: %s", out.Message)
	assert.Equal(t, "+919876543210", (*calls)[0].payload.Phone)
}

func TestSubmitValidationFailureMakesNoNetworkCall(t *testing.T) {
	srv, calls := newBackend(t, okCreate)
	sub, store := newSubmitter(t, srv.URL)

	f := submittableForm()
	f.State = "Maharashtra"
	f.District = "Pune"
	f.City = "Haveli"
	f.Village = types.OtherSentinel
	f.OtherVillage = ""
	store.Load(f)

	out := sub.Submit(context.Background(), store)
	assert.False(t, out.Success)
	assert.True(t, out.ScrollTop)
	assert.Equal(t, "Village name is required", out.Errors["otherVillage"])
	assert.Empty(t, *calls)
	assert.Equal(t, "Village name is required", store.Errors()["otherVillage"])

	// Form state is preserved for correction.
	assert.Equal(t, "Asha", store.Snapshot().FirstName)
}

func TestSubmitConflictPreservesState(t *testing.T) {
	srv, _ := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"email taken"}`))
	})
	sub, store := newSubmitter(t, srv.URL)
	store.Load(submittableForm())

	out := sub.Submit(context.Background(), store)
	assert.False(t, out.Success)
	assert.Equal(t, MsgConflictEmail, out.Message)
	assert.Equal(t, "Asha", store.Snapshot().FirstName)
}

func TestSubmitServerError(t *testing.T) {
	srv, _ := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	sub, store := newSubmitter(t, srv.URL)
	store.Load(submittableForm())

	out := sub.Submit(context.Background(), store)
	assert.False(t, out.Success)
	assert.Equal(t, MsgServerError, out.Message)
	assert.Equal(t, "Asha", store.Snapshot().FirstName)
}

func TestSubmitUnparseableResponse(t *testing.T) {
	srv, _ := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`not json`))
	})
	sub, store := newSubmitter(t, srv.URL)
	store.Load(submittableForm())

	out := sub.Submit(context.Background(), store)
	assert.False(t, out.Success)
	assert.Equal(t, MsgFailedParseJSON, out.Message)
}

func TestSubmitTransportFailure(t *testing.T) {
	sub, store := newSubmitter(t, "http://127.0.0.1:1")
	store.Load(submittableForm())

	out := sub.Submit(context.Background(), store)
	assert.False(t, out.Success)
	assert.Equal(t, MsgSomethingWentWrong, out.Message)
	assert.Equal(t, "Asha", store.Snapshot().FirstName)
}

func TestSubmitUploadsStagedPhoto(t *testing.T) {
	srv, calls := newBackend(t, okCreate)
	sub, store := newSubmitter(t, srv.URL)
	store.Load(submittableForm())
	store.StagePhoto("me.jpg", "image/jpeg", []byte{0xff, 0xd8, 0xff})

	out := sub.Submit(context.Background(), store)
	require.True(t, out.Success, "message: %s", out.Message)
	require.Len(t, *calls, 2)
	assert.Equal(t, "/candidate-profile/prof-123/upload", (*calls)[1].path)
	assert.Nil(t, store.Photo())
}

func TestSubmitPhotoFailureIsNonFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /candidate-profile", okCreate)
	mux.HandleFunc("POST /candidate-profile/{id}/upload", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sub, store := newSubmitter(t, srv.URL)
	store.Load(submittableForm())
	store.StagePhoto("me.jpg", "image/jpeg", []byte{0xff, 0xd8, 0xff})

	out := sub.Submit(context.Background(), store)
	assert.True(t, out.Success)
	assert.Equal(t, "prof-123", out.ProfileID)
	assert.Equal(t, MsgPhotoUploadServerError, out.Warning)

	// The created record stands; the store still resets.
	assert.Empty(t, store.Snapshot().FirstName)
}
