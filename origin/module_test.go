package origin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/lambda-feedback/edgeroute/origin"
)

func TestNewStore_Dir(t *testing.T) {
	s, err := origin.NewStore(origin.Config{Dir: t.TempDir()}, zap.NewNop())
	assert.NoError(t, err)
	assert.IsType(t, &origin.DirStore{}, s)
}

func TestNewStore_Bucket(t *testing.T) {
	s, err := origin.NewStore(origin.Config{Bucket: "previews", Region: "eu-west-1"}, zap.NewNop())
	assert.NoError(t, err)
	assert.IsType(t, &origin.S3Store{}, s)
}

func TestNewStore_None(t *testing.T) {
	_, err := origin.NewStore(origin.Config{}, zap.NewNop())
	assert.ErrorIs(t, err, origin.ErrNoStore)
}
