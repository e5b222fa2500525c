package controllers

import (
	"context"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"urbanmind-be/models"
)

// useCollections swaps the collection resolver for the duration of a
// test so handlers run against in-memory data instead of Mongo.
func useCollections(t *testing.T, colls map[string]collection) {
	t.Helper()
	prev := getCollection
	getCollection = func(name string) collection {
		c, ok := colls[name]
		if !ok {
			t.Fatalf("handler asked for unexpected collection %q", name)
		}
		return c
	}
	t.Cleanup(func() { getCollection = prev })
}

// memIssueColl is an in-memory issues collection. Query results come
// back as real driver values via NewSingleResultFromDocument and
// NewCursorFromDocuments, so the handlers decode them the same way they
// decode Mongo responses.
type memIssueColl struct {
	issues []*models.Issue
}

func issueMatches(filter bson.M, i *models.Issue) bool {
	for key, want := range filter {
		switch key {
		case "_id":
			if i.ID != want.(primitive.ObjectID) {
				return false
			}
		case "userId":
			if i.UserID != want.(primitive.ObjectID) {
				return false
			}
		case "contractorId":
			id, ok := want.(primitive.ObjectID)
			if !ok || i.ContractorID == nil || *i.ContractorID != id {
				return false
			}
		case "status":
			switch v := want.(type) {
			case string:
				if string(i.Status) != v {
					return false
				}
			case bson.M:
				if !statusInClause(i.Status, v) {
					return false
				}
			default:
				return false
			}
		case "category":
			if string(i.Category) != want.(string) {
				return false
			}
		case "city":
			if i.City != want.(string) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func statusInClause(s models.IssueStatus, clause bson.M) bool {
	vals, _ := clause["$in"].([]string)
	for _, v := range vals {
		if string(s) == v {
			return true
		}
	}
	return false
}

func (m *memIssueColl) matching(filter interface{}) []*models.Issue {
	f, _ := filter.(bson.M)
	var out []*models.Issue
	for _, i := range m.issues {
		if issueMatches(f, i) {
			out = append(out, i)
		}
	}
	return out
}

func (m *memIssueColl) CountDocuments(_ context.Context, filter interface{}, _ ...*options.CountOptions) (int64, error) {
	return int64(len(m.matching(filter))), nil
}

func (m *memIssueColl) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	issue := document.(models.Issue)
	m.issues = append(m.issues, &issue)
	return &mongo.InsertOneResult{InsertedID: issue.ID}, nil
}

func (m *memIssueColl) UpdateOne(_ context.Context, filter interface{}, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	u, _ := update.(bson.M)
	var n int64
	for _, i := range m.matching(filter) {
		n++
		set, _ := u["$set"].(bson.M)
		for k, v := range set {
			switch k {
			case "status":
				i.Status = v.(models.IssueStatus)
			case "updates":
				i.Updates = v.([]models.IssueUpdate)
			case "updatedAt":
				i.UpdatedAt = v.(time.Time)
			case "contractorId":
				i.ContractorID = v.(*primitive.ObjectID)
			case "funds":
				i.Funds = v.(*models.FundsRequest)
			}
		}
	}
	return &mongo.UpdateResult{MatchedCount: n, ModifiedCount: n}, nil
}

func (m *memIssueColl) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	for _, i := range m.matching(filter) {
		return mongo.NewSingleResultFromDocument(*i, nil, nil)
	}
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func (m *memIssueColl) Find(_ context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	matched := m.matching(filter)

	dir := -1
	var skip, limit int
	if len(opts) > 0 && opts[0] != nil {
		if d, ok := opts[0].Sort.(bson.D); ok && len(d) > 0 {
			if v, ok := d[0].Value.(int); ok {
				dir = v
			}
		}
		if opts[0].Skip != nil {
			skip = int(*opts[0].Skip)
		}
		if opts[0].Limit != nil {
			limit = int(*opts[0].Limit)
		}
	}

	sort.SliceStable(matched, func(a, b int) bool {
		if dir < 0 {
			return matched[a].CreatedAt.After(matched[b].CreatedAt)
		}
		return matched[a].CreatedAt.Before(matched[b].CreatedAt)
	})

	if skip > len(matched) {
		skip = len(matched)
	}
	matched = matched[skip:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	docs := make([]interface{}, 0, len(matched))
	for _, i := range matched {
		docs = append(docs, *i)
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

// find returns the stored issue with the given id, for assertions.
func (m *memIssueColl) find(t *testing.T, id primitive.ObjectID) *models.Issue {
	t.Helper()
	for _, i := range m.issues {
		if i.ID == id {
			return i
		}
	}
	t.Fatalf("issue %s not in store", id.Hex())
	return nil
}

// memUserColl is the users counterpart.
type memUserColl struct {
	users []*models.User
}

func userMatches(filter bson.M, u *models.User) bool {
	for key, want := range filter {
		switch key {
		case "_id":
			if u.ID != want.(primitive.ObjectID) {
				return false
			}
		case "email":
			if u.Email != want.(string) {
				return false
			}
		case "role":
			switch v := want.(type) {
			case models.Role:
				if u.Role != v {
					return false
				}
			case string:
				if string(u.Role) != v {
					return false
				}
			default:
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (m *memUserColl) matching(filter interface{}) []*models.User {
	f, _ := filter.(bson.M)
	var out []*models.User
	for _, u := range m.users {
		if userMatches(f, u) {
			out = append(out, u)
		}
	}
	return out
}

func (m *memUserColl) CountDocuments(_ context.Context, filter interface{}, _ ...*options.CountOptions) (int64, error) {
	return int64(len(m.matching(filter))), nil
}

func (m *memUserColl) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	user := document.(models.User)
	m.users = append(m.users, &user)
	return &mongo.InsertOneResult{InsertedID: user.ID}, nil
}

func (m *memUserColl) UpdateOne(_ context.Context, filter interface{}, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	u, _ := update.(bson.M)
	var n int64
	for _, usr := range m.matching(filter) {
		n++
		if inc, ok := u["$inc"].(bson.M); ok {
			if pts, ok := inc["points"].(int); ok {
				usr.Points += pts
			}
		}
		set, _ := u["$set"].(bson.M)
		for k, v := range set {
			switch k {
			case "name":
				usr.Name = v.(string)
			case "city":
				usr.City = v.(string)
			case "updatedAt":
				usr.UpdatedAt = v.(time.Time)
			}
		}
	}
	return &mongo.UpdateResult{MatchedCount: n, ModifiedCount: n}, nil
}

func (m *memUserColl) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	for _, u := range m.matching(filter) {
		return mongo.NewSingleResultFromDocument(*u, nil, nil)
	}
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func (m *memUserColl) Find(_ context.Context, filter interface{}, _ ...*options.FindOptions) (*mongo.Cursor, error) {
	docs := make([]interface{}, 0, len(m.users))
	for _, u := range m.matching(filter) {
		docs = append(docs, *u)
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}
