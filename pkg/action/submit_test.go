package action

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/taskwrapper"
)

type fakePoolService struct {
	created []string
	updated []string
	deleted []string
}

func (f *fakePoolService) CreatePool(_ context.Context, req *api.PoolCreateReqBody) (bool, error) {
	f.created = append(f.created, req.PoolName)
	return true, nil
}

func (f *fakePoolService) UpdatePool(_ context.Context, name string, _ *api.PoolUpdateReqBody) (bool, error) {
	f.updated = append(f.updated, name)
	return false, nil
}

func (f *fakePoolService) DeletePool(_ context.Context, name string) (bool, error) {
	f.deleted = append(f.deleted, name)
	return false, nil
}

func TestSubmitter_CreateAndUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var tasks []string
	wrapper := taskwrapper.NewMockTaskWrapper(ctrl)
	wrapper.EXPECT().Wrap(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, envelope taskwrapper.Envelope) error {
			tasks = append(tasks, envelope.Task.Name+":"+envelope.Task.Metadata[api.TaskMetadataPoolName])
			return runEnvelope(ctx, envelope)
		}).Times(2)

	service := &fakePoolService{}
	refreshed := 0
	s := NewSubmitter(service, wrapper, func(context.Context) { refreshed++ })

	require.NoError(t, s.Create(context.Background(), &api.PoolCreateReqBody{PoolName: "new-pool"}))
	require.NoError(t, s.Update(context.Background(), "rbd", &api.PoolUpdateReqBody{Size: 2}))

	assert.Equal(t, []string{"pool/create:new-pool", "pool/edit:rbd"}, tasks)
	assert.Equal(t, []string{"new-pool"}, service.created)
	assert.Equal(t, []string{"rbd"}, service.updated)
	assert.Equal(t, 2, refreshed)
}

func TestSubmitter_RejectsEmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewSubmitter(&fakePoolService{}, taskwrapper.NewMockTaskWrapper(ctrl), nil)
	assert.Error(t, s.Create(context.Background(), &api.PoolCreateReqBody{}))
	assert.Error(t, s.Update(context.Background(), "", nil))
}

func TestSubmitter_DeleteOptions(t *testing.T) {
	service := &fakePoolService{}
	opts := NewSubmitter(service, nil, nil).DeleteOptions()

	assert.Equal(t, api.TaskPoolDelete, opts.TaskName)
	assert.Equal(t, api.TaskMetadataPoolName, opts.MetadataKey)
	_, err := opts.Delete(context.Background(), "rbd")
	require.NoError(t, err)
	assert.Equal(t, []string{"rbd"}, service.deleted)
}
