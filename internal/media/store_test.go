package media

import (
	"context"
	"errors"
	"testing"

	"github.com/dkeye/roomclient/internal/core/mocks"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNewStoreDefaults(t *testing.T) {
	assert.Equal(t, domain.DefaultMediaSettings(), NewStore(nil).Current())

	// No codec: external settings are ignored.
	assert.Equal(t, domain.DefaultMediaSettings(), NewStore(&domain.MediaSettings{Bandwidth: 999}).Current())

	ext := domain.MediaSettings{Codec: "h264", Bandwidth: 512, Resolution: "hd", FrameRate: 30}
	assert.Equal(t, ext, NewStore(&ext).Current())
}

func TestUpdateReapply(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockMediaPublisher(ctrl)
	s := NewStore(nil)
	ctx := context.Background()

	next := s.Current()
	next.Bandwidth = 1024

	// Not attached: nothing to reapply.
	assert.NoError(t, s.Update(ctx, next, true))
	assert.Equal(t, 1024, s.Current().Bandwidth)

	s.Attach(pub)
	next.FrameRate = 15
	pub.EXPECT().ApplyConstraints(gomock.Any(), next.Constraints()).Return(nil)
	assert.NoError(t, s.Update(ctx, next, true))

	// Without reapply the publish is untouched.
	next.FrameRate = 10
	assert.NoError(t, s.Update(ctx, next, false))
	assert.Equal(t, 10, s.Current().FrameRate)

	boom := errors.New("boom")
	pub.EXPECT().ApplyConstraints(gomock.Any(), gomock.Any()).Return(boom)
	assert.ErrorIs(t, s.Update(ctx, next, true), boom)

	s.Detach()
	assert.NoError(t, s.Update(ctx, next, true))
}
