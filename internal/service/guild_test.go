package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/guildhall/internal/cache"
	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/character"
	"github.com/cory-johannsen/guildhall/internal/game/guild"
	"github.com/cory-johannsen/guildhall/internal/service"
	servicemock "github.com/cory-johannsen/guildhall/internal/service/mock"
)

type guildFixture struct {
	svc    *service.GuildService
	guilds *servicemock.MockGuildStore
	chars  *servicemock.MockCharacterStore
	roster *cache.Memory[[]*character.Character]
}

func newGuildService(t *testing.T) guildFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := guildFixture{
		guilds: servicemock.NewMockGuildStore(ctrl),
		chars:  servicemock.NewMockCharacterStore(ctrl),
		roster: cache.NewMemory[[]*character.Character](),
	}
	rules := service.DefaultRules()
	rules.MaxGuildMembers = 3
	f.svc = service.NewGuildService(f.guilds, f.chars, f.roster, rules, zaptest.NewLogger(t))
	return f
}

func TestGuildService_Create(t *testing.T) {
	f := newGuildService(t)
	in, err := guild.New("Iron Wolves")
	require.NoError(t, err)
	in.MemberCount = 12

	f.guilds.EXPECT().List(gomock.Any()).Return(nil, nil)
	f.guilds.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, g *guild.Guild) (*guild.Guild, error) {
			assert.Equal(t, 0, g.MemberCount)
			out := *g
			out.ID = 1
			return &out, nil
		})

	got, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, 1, got.Level)
}

func TestGuildService_CreateRejectsDuplicateName(t *testing.T) {
	f := newGuildService(t)
	f.guilds.EXPECT().List(gomock.Any()).Return([]*guild.Guild{{ID: 1, Name: "Iron Wolves", Level: 1}}, nil)
	f.guilds.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	in, err := guild.New("  iron wolves ")
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), in)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestGuildService_CreateValidates(t *testing.T) {
	f := newGuildService(t)
	_, err := f.svc.Create(context.Background(), &guild.Guild{Name: "ab", Level: 1})
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = f.svc.Create(context.Background(), nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestGuildService_DeleteWithMembersIsRefused(t *testing.T) {
	f := newGuildService(t)
	f.guilds.EXPECT().Delete(gomock.Any(), int64(2)).Return(errors.FailedPrecondition("guild 2 still has 3 members"))

	err := f.svc.Delete(context.Background(), 2)
	assert.True(t, errors.IsFailedPrecondition(err))
	assert.Equal(t, 400, errors.GetCode(err).HTTPStatus())
}

func TestGuildService_LevelUp(t *testing.T) {
	f := newGuildService(t)
	f.guilds.EXPECT().GetByID(gomock.Any(), int64(2)).Return(&guild.Guild{ID: 2, Name: "Iron Wolves", Level: 4}, nil)
	f.guilds.EXPECT().Update(gomock.Any(), int64(2), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, g *guild.Guild) (*guild.Guild, error) { return g, nil })

	got, err := f.svc.LevelUp(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Level)
}

func TestGuildService_AddCharacterInvalidatesRoster(t *testing.T) {
	f := newGuildService(t)
	ctx := context.Background()
	f.roster.Put(ctx, service.RosterKey, []*character.Character{}, cache.NoExpiry)

	f.guilds.EXPECT().AddMember(gomock.Any(), int64(5), int64(2), 3).Return(nil)
	f.guilds.EXPECT().GetByID(gomock.Any(), int64(2)).Return(&guild.Guild{ID: 2, Name: "Iron Wolves", Level: 1, MemberCount: 1}, nil)

	g, err := f.svc.AddCharacter(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, g.MemberCount)
	_, ok := f.roster.Get(ctx, service.RosterKey)
	assert.False(t, ok)
}

func TestGuildService_AddCharacterPropagatesStoreErrors(t *testing.T) {
	f := newGuildService(t)
	f.guilds.EXPECT().AddMember(gomock.Any(), int64(5), int64(2), 3).Return(errors.FailedPrecondition("guild 2 is full"))

	_, err := f.svc.AddCharacter(context.Background(), 2, 5)
	assert.True(t, errors.IsFailedPrecondition(err))

	_, err = f.svc.AddCharacter(context.Background(), 0, 5)
	assert.True(t, errors.IsNotFound(err))
}

func TestGuildService_RemoveCharacter(t *testing.T) {
	f := newGuildService(t)
	ctx := context.Background()
	f.roster.Put(ctx, service.RosterKey, []*character.Character{}, cache.NoExpiry)

	f.guilds.EXPECT().RemoveMember(gomock.Any(), int64(5)).Return(int64(2), nil)
	require.NoError(t, f.svc.RemoveCharacter(ctx, 5))
	_, ok := f.roster.Get(ctx, service.RosterKey)
	assert.False(t, ok)

	f.guilds.EXPECT().RemoveMember(gomock.Any(), int64(6)).Return(int64(0), errors.NotFound("character 6 not found"))
	assert.True(t, errors.IsNotFound(f.svc.RemoveCharacter(ctx, 6)))
}

func TestGuildService_Members(t *testing.T) {
	f := newGuildService(t)
	a, _ := character.NewWarrior("Conan", 5, 50, 30, "Axe")
	a.ID, a.GuildID = 1, 2
	b, _ := character.NewMage("Merlin", 2, 100, 20, "Fire")
	b.ID = 2

	f.guilds.EXPECT().GetByID(gomock.Any(), int64(2)).Return(&guild.Guild{ID: 2, Name: "Iron Wolves", Level: 1, MemberCount: 1}, nil)
	f.chars.EXPECT().List(gomock.Any()).Return([]*character.Character{a, b}, nil)

	got, err := f.svc.Members(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Conan", got[0].Name)
}
