package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCollectors(t *testing.T) {
	FramesRendered.Inc()
	MixValue.Set(0.25)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "glmix_frames_rendered_total")
	assert.Contains(t, string(body), "glmix_mix_value 0.25")
}

func TestLabelledCounters(t *testing.T) {
	before := testutil.ToFloat64(ShaderBuildFailures.WithLabelValues("fragment"))
	ShaderBuildFailures.WithLabelValues("fragment").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ShaderBuildFailures.WithLabelValues("fragment")))
}
