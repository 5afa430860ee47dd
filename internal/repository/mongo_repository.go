package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/bloglist/internal/domain"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

// The users collection carries a single unique index, on username.
const mongoUniqueUserField = "username"

type userDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Name         string               `bson:"name"`
	PasswordHash string               `bson:"passwordHash"`
	Blogs        []primitive.ObjectID `bson:"blogs"`
}

func (d userDocument) toDomain() domain.User {
	blogs := make([]string, 0, len(d.Blogs))
	for _, id := range d.Blogs {
		blogs = append(blogs, id.Hex())
	}
	return domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Blogs:        blogs,
	}
}

type blogDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	URL    string             `bson:"url"`
	Likes  int                `bson:"likes"`
	User   primitive.ObjectID `bson:"user,omitempty"`
}

func (d blogDocument) toDomain() domain.Blog {
	blog := domain.Blog{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		URL:    d.URL,
		Likes:  d.Likes,
	}
	if !d.User.IsZero() {
		blog.UserID = d.User.Hex()
	}
	return blog
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewMalformattedID(id, err)
	}
	return oid, nil
}

func mapMongoError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NewNotFound(resource)
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.NewDuplicateKey(mongoUniqueUserField, err)
	}
	return err
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository returns a document-store implementation over the users collection.
func NewMongoUserRepository(coll *mongo.Collection) UserRepository {
	return &mongoUserRepository{coll: coll}
}

func (r *mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapMongoError(err, "user")
	}
	user := doc.toDomain()
	return &user, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := userDocument{
		Username:     user.Username,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Blogs:        []primitive.ObjectID{},
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return mapMongoError(err, "user")
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	if user.Blogs == nil {
		user.Blogs = []string{}
	}
	return nil
}

func (r *mongoUserRepository) AttachBlog(ctx context.Context, userID, blogID string) error {
	return r.updateBlogs(ctx, "$push", userID, blogID)
}

func (r *mongoUserRepository) DetachBlog(ctx context.Context, userID, blogID string) error {
	return r.updateBlogs(ctx, "$pull", userID, blogID)
}

func (r *mongoUserRepository) updateBlogs(ctx context.Context, op, userID, blogID string) error {
	uid, err := objectID(userID)
	if err != nil {
		return err
	}
	bid, err := objectID(blogID)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateByID(ctx, uid, bson.M{op: bson.M{"blogs": bid}})
	if err != nil {
		return mapMongoError(err, "user")
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFound("user")
	}
	return nil
}

type mongoBlogRepository struct {
	coll *mongo.Collection
}

// NewMongoBlogRepository returns a document-store implementation over the blogs collection.
func NewMongoBlogRepository(coll *mongo.Collection) BlogRepository {
	return &mongoBlogRepository{coll: coll}
}

func (r *mongoBlogRepository) List(ctx context.Context) ([]domain.Blog, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []blogDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	blogs := make([]domain.Blog, 0, len(docs))
	for _, doc := range docs {
		blogs = append(blogs, doc.toDomain())
	}
	return blogs, nil
}

func (r *mongoBlogRepository) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc blogDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoError(err, "blog")
	}
	blog := doc.toDomain()
	return &blog, nil
}

func (r *mongoBlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	doc := blogDocument{
		Title:  blog.Title,
		Author: blog.Author,
		URL:    blog.URL,
		Likes:  blog.Likes,
	}
	if blog.UserID != "" {
		owner, err := objectID(blog.UserID)
		if err != nil {
			return err
		}
		doc.User = owner
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return mapMongoError(err, "blog")
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		blog.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBlogRepository) Update(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	oid, err := objectID(blog.ID)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"title":  blog.Title,
		"author": blog.Author,
		"url":    blog.URL,
		"likes":  blog.Likes,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc blogDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, mapMongoError(err, "blog")
	}
	updated := doc.toDomain()
	return &updated, nil
}

func (r *mongoBlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapMongoError(err, "blog")
	}
	if res.DeletedCount == 0 {
		return apperrors.NewNotFound("blog")
	}
	return nil
}
