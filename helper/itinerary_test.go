package helper

import (
	"testing"

	"travel_manager/model"
	"travel_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func itineraryInputs() []model.ItineraryInput {
	return []model.ItineraryInput{
		{
			DayNumber:      utils.Ptr(2),
			ItineraryTitle: "Gulmarg",
			Activities: []model.ActivityInput{
				{ActivityTitle: "Gondola", Images: []model.ImageInput{{Url: "https://img/gondola.jpg", PublicID: "g1"}}},
			},
		},
		{
			DayNumber:      utils.Ptr(1),
			ItineraryTitle: "Arrival in Srinagar",
			Images:         []model.ImageInput{{Url: "https://img/dal.jpg"}},
			Activities: []model.ActivityInput{
				{ActivityTitle: "Shikara ride"},
				{ActivityTitle: "Mughal gardens"},
			},
		},
	}
}

func TestBuildItinerariesOrdersByDay(t *testing.T) {
	items, err := BuildItineraries(itineraryInputs())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].DayNumber)
	assert.Equal(t, "Arrival in Srinagar", items[0].ItineraryTitle)
	assert.Len(t, items[0].Activities, 2)
	assert.Len(t, items[0].Images, 1)
	assert.Equal(t, 2, items[1].DayNumber)
	assert.Equal(t, "g1", items[1].Activities[0].Images[0].PublicID)
}

func TestBuildItinerariesDefaultsAndDuplicates(t *testing.T) {
	items, err := BuildItineraries([]model.ItineraryInput{{ItineraryTitle: "a"}, {ItineraryTitle: "b"}})
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].DayNumber)
	assert.Equal(t, 2, items[1].DayNumber)

	_, err = BuildItineraries([]model.ItineraryInput{
		{ItineraryTitle: "a"},
		{ItineraryTitle: "b", DayNumber: utils.Ptr(1)},
	})
	assert.ErrorIs(t, err, ErrDuplicateDayNumber)
}

func TestReplaceItinerariesLeavesNoOrphans(t *testing.T) {
	db := setupDB(t)
	q := seedQuery(t, db, "PENDING", "2026-05-01", "2026-05-05")
	owner := model.ItineraryOwner{TourPackageQueryId: &q.ID}

	items, err := BuildItineraries(itineraryInputs())
	require.NoError(t, err)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ReplaceItineraries(tx, owner, items)
	}))

	var count int64
	db.Model(&model.Itinerary{}).Where("tour_package_query_id = ?", q.ID).Count(&count)
	assert.EqualValues(t, 2, count)
	db.Model(&model.Activity{}).Count(&count)
	assert.EqualValues(t, 3, count)
	db.Model(&model.Image{}).Count(&count)
	assert.EqualValues(t, 2, count)

	replacement, err := BuildItineraries([]model.ItineraryInput{{ItineraryTitle: "Only day"}})
	require.NoError(t, err)
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ReplaceItineraries(tx, owner, replacement)
	}))

	db.Unscoped().Model(&model.Itinerary{}).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Unscoped().Model(&model.Activity{}).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Unscoped().Model(&model.Image{}).Count(&count)
	assert.EqualValues(t, 0, count)

	var loaded model.TourPackageQuery
	require.NoError(t, PreloadItineraries(db).First(&loaded, q.ID).Error)
	require.Len(t, loaded.Itineraries, 1)
	assert.Equal(t, "Only day", loaded.Itineraries[0].ItineraryTitle)
}

func TestReplaceItinerariesRejectsAmbiguousOwner(t *testing.T) {
	db := setupDB(t)
	id := uint(1)
	err := ReplaceItineraries(db, model.ItineraryOwner{TourPackageId: &id, TourPackageQueryId: &id}, nil)
	assert.Error(t, err)
	err = ReplaceItineraries(db, model.ItineraryOwner{}, nil)
	assert.Error(t, err)
}

func TestCloneItinerariesDropsIds(t *testing.T) {
	src := []model.Itinerary{{
		DTO:       model.DTO{ID: 9},
		DayNumber: 1,
		Images:    []model.Image{{DTO: model.DTO{ID: 4}, Url: "u"}},
		Activities: []model.Activity{{
			DTO: model.DTO{ID: 5}, ItineraryId: 9, ActivityTitle: "x",
			Images: []model.Image{{DTO: model.DTO{ID: 6}, Url: "v"}},
		}},
	}}
	out := CloneItineraries(src)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].ID)
	assert.Zero(t, out[0].Images[0].ID)
	assert.Zero(t, out[0].Activities[0].ID)
	assert.Zero(t, out[0].Activities[0].ItineraryId)
	assert.Zero(t, out[0].Activities[0].Images[0].ID)
	assert.EqualValues(t, 9, src[0].ID)
}
