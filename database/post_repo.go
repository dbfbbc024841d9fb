package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-admin-backend/errs"
	"github.com/rpupo63/blog-admin-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// columns a post listing may be ordered by, keyed by their JSON name
var postOrderColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"slug":      "slug",
	"draft":     "draft",
}

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindMany returns the posts matching args with their author and tags
func (r *PostRepo) FindMany(ctx context.Context, args models.PostFindManyArgs) ([]*models.Post, error) {
	q := r.filtered(ctx, args).Preload("Tags").Preload("Author")

	column, ok := postOrderColumns[args.OrderBy]
	if !ok {
		column = "created_at"
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: args.Descending}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})

	if args.Skip > 0 {
		q = q.Offset(args.Skip)
	}
	if args.Take > 0 {
		q = q.Limit(args.Take)
	}

	var posts []*models.Post
	err := q.Find(&posts).Error
	return posts, err
}

// Count returns how many posts match args. Skip and Take are ignored.
func (r *PostRepo) Count(ctx context.Context, args models.PostFindManyArgs) (int64, error) {
	var count int64
	err := r.filtered(ctx, args).Count(&count).Error
	return count, err
}

func (r *PostRepo) filtered(ctx context.Context, args models.PostFindManyArgs) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if args.TitleContains != "" {
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(args.TitleContains))+"%")
	}
	if args.Draft != nil {
		q = q.Where("draft = ?", *args.Draft)
	}
	if args.AuthorID != uuid.Nil {
		q = q.Where("author_id = ?", args.AuthorID)
	}
	if args.TagID != uuid.Nil {
		q = q.Where("id IN (?)", r.db.Table("post_tags").Select("post_id").Where("tag_id = ?", args.TagID))
	}
	return q
}

// FindByID returns a post by its ID, or gorm.ErrRecordNotFound
func (r *PostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return findPost(r.db.WithContext(ctx), id)
}

// findPost loads a post with its author and tags through db, which may be a
// transaction.
func findPost(db *gorm.DB, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := db.Preload("Tags").Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindTags returns the tags attached to a post
func (r *PostRepo) FindTags(ctx context.Context, postID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.created_at").
		Find(&tags).Error
	return tags, err
}

// FindAuthor returns the author of a post
func (r *PostRepo) FindAuthor(ctx context.Context, postID uuid.UUID) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).
		Joins("JOIN posts ON posts.author_id = authors.id").
		Where("posts.id = ?", postID).
		First(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Create inserts a post and links its tags in one transaction. The author
// and every tag must already exist.
func (r *PostRepo) Create(ctx context.Context, in models.PostCreateInput) (*models.Post, error) {
	if in.Author == nil {
		return nil, fmt.Errorf("%w: no author given", errs.ErrAuthorNotFound)
	}

	post := models.Post{
		Title:           in.Title,
		Slug:            in.Slug,
		Content:         in.Content,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		FeaturedImage:   in.FeaturedImage,
		AuthorID:        in.Author.ID,
	}
	if in.Draft != nil {
		post.Draft = *in.Draft
	}

	// read back on tx, never on a replica
	var created *models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAuthor(tx, post.AuthorID); err != nil {
			return err
		}
		tags, err := loadTags(tx, in.Tags)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&post).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&post).Association("Tags").Append(tags); err != nil {
				return err
			}
		}
		created, err = findPost(tx, post.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies the non-nil fields of in.Data to the post selected by
// in.Where. A non-nil Tags slice replaces the post's tags.
func (r *PostRepo) Update(ctx context.Context, in models.PostUpdateInput) (*models.Post, error) {
	var updated *models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, "id = ?", in.Where.ID).Error; err != nil {
			return err
		}

		values := postUpdateValues(in.Data)
		if in.Data.Author != nil {
			if err := requireAuthor(tx, in.Data.Author.ID); err != nil {
				return err
			}
			values["author_id"] = in.Data.Author.ID
		}
		if _, ok := values["updated_at"]; !ok {
			values["updated_at"] = time.Now()
		}
		if err := tx.Model(&post).Updates(values).Error; err != nil {
			return err
		}

		if in.Data.Tags != nil {
			tags, err := loadTags(tx, in.Data.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&post).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		var err error
		updated, err = findPost(tx, in.Where.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the post selected by where and its tag links, returning
// the row as it was before deletion.
func (r *PostRepo) Delete(ctx context.Context, where models.PostWhereUnique) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Tags").Preload("Author").First(&post, "id = ?", where.ID).Error; err != nil {
			return err
		}
		return tx.Select("Tags").Delete(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func postUpdateValues(data models.PostUpdateData) map[string]interface{} {
	values := make(map[string]interface{})
	if data.Title != nil {
		values["title"] = *data.Title
	}
	if data.Slug != nil {
		values["slug"] = *data.Slug
	}
	if data.Draft != nil {
		values["draft"] = *data.Draft
	}
	if data.Content != nil {
		values["content"] = *data.Content
	}
	if data.MetaTitle != nil {
		values["meta_title"] = *data.MetaTitle
	}
	if data.MetaDescription != nil {
		values["meta_description"] = *data.MetaDescription
	}
	if data.FeaturedImage != nil {
		values["featured_image"] = *data.FeaturedImage
	}
	if data.CreatedAt != nil {
		values["created_at"] = *data.CreatedAt
	}
	if data.UpdatedAt != nil {
		values["updated_at"] = *data.UpdatedAt
	}
	return values
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes s match literally inside a LIKE pattern escaped with '\'
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func requireAuthor(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Author{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", errs.ErrAuthorNotFound, id)
	}
	return nil
}

func loadTags(tx *gorm.DB, refs []models.EntityRef) ([]models.Tag, error) {
	if len(refs) == 0 {
		return []models.Tag{}, nil
	}

	ids := make([]uuid.UUID, 0, len(refs))
	seen := make(map[uuid.UUID]bool, len(refs))
	for _, ref := range refs {
		if !seen[ref.ID] {
			seen[ref.ID] = true
			ids = append(ids, ref.ID)
		}
	}

	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) == len(ids) {
		return tags, nil
	}

	found := make(map[uuid.UUID]bool, len(tags))
	for _, tag := range tags {
		found[tag.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, fmt.Errorf("%w: %s", errs.ErrTagNotFound, id)
		}
	}
	return tags, nil
}
