package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rpupo63/blogicum-backend/models"
)

func TestVisibleAtPredicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepo(db)

	author := newTestUser(t, db, "author")
	publishedCat := newTestCategory(t, db, "published", true)
	hiddenCat := newTestCategory(t, db, "hidden", false)

	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	visibleNoCat := createTestPost(t, db, testPost{author: author, pubDate: past, published: true, title: "visible no category"})
	visibleWithCat := createTestPost(t, db, testPost{author: author, category: publishedCat, pubDate: past, published: true, title: "visible with category"})
	createTestPost(t, db, testPost{author: author, pubDate: past, published: false, title: "unpublished"})
	createTestPost(t, db, testPost{author: author, pubDate: future, published: true, title: "scheduled"})
	createTestPost(t, db, testPost{author: author, category: hiddenCat, pubDate: past, published: true, title: "hidden category"})

	page, err := repo.VisiblePage(now, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)

	var titles []string
	for _, p := range page.Posts {
		titles = append(titles, p.Title)
	}
	require.ElementsMatch(t, []string{visibleNoCat.Title, visibleWithCat.Title}, titles)
}

func TestFindVisibleByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepo(db)

	author := newTestUser(t, db, "author")
	now := time.Now()

	visible := createTestPost(t, db, testPost{author: author, pubDate: now.Add(-time.Hour), published: true})
	hidden := createTestPost(t, db, testPost{author: author, pubDate: now.Add(-time.Hour), published: false})

	found, err := repo.FindVisibleByID(visible.ID, now)
	require.NoError(t, err)
	require.Equal(t, visible.ID, found.ID)

	_, err = repo.FindVisibleByID(hidden.ID, now)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// FindByID ignores visibility: this is the author's path.
	found, err = repo.FindByID(hidden.ID)
	require.NoError(t, err)
	require.Equal(t, hidden.ID, found.ID)
}

func TestFuturePostVisibleOnlyToAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepo(db)

	author := newTestUser(t, db, "author")
	now := time.Now()
	createTestPost(t, db, testPost{author: author, pubDate: now.Add(24 * time.Hour), published: true, title: "scheduled"})

	page, err := repo.VisiblePage(now, 1)
	require.NoError(t, err)
	require.Empty(t, page.Posts)

	ownPage, err := repo.AuthorPage(author.ID, true, now, 1)
	require.NoError(t, err)
	require.Len(t, ownPage.Posts, 1)
	require.Equal(t, "scheduled", ownPage.Posts[0].Title)

	otherPage, err := repo.AuthorPage(author.ID, false, now, 1)
	require.NoError(t, err)
	require.Empty(t, otherPage.Posts)
}

func TestCategoryPageSkipsOtherCategories(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepo(db)

	author := newTestUser(t, db, "author")
	travel := newTestCategory(t, db, "travel", true)
	food := newTestCategory(t, db, "food", true)
	now := time.Now()

	createTestPost(t, db, testPost{author: author, category: travel, pubDate: now.Add(-time.Hour), published: true, title: "travel post"})
	createTestPost(t, db, testPost{author: author, category: food, pubDate: now.Add(-time.Hour), published: true, title: "food post"})
	createTestPost(t, db, testPost{author: author, pubDate: now.Add(-time.Hour), published: true, title: "uncategorized"})

	page, err := repo.CategoryPage(travel.ID, now, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.Equal(t, "travel post", page.Posts[0].Title)
}

func TestCommentCountAnnotationIsLive(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostRepo(db)
	commentRepo := NewCommentRepo(db)

	author := newTestUser(t, db, "author")
	reader := newTestUser(t, db, "reader")
	now := time.Now()
	post := createTestPost(t, db, testPost{author: author, pubDate: now.Add(-time.Hour), published: true})

	page, err := postRepo.VisiblePage(now, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.EqualValues(t, 0, page.Posts[0].CommentCount)

	comment := &models.Comment{Text: "hi", PostID: post.ID, AuthorID: reader.ID}
	require.NoError(t, commentRepo.Add(comment))

	page, err = postRepo.VisiblePage(now, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Posts[0].CommentCount)

	// Deleting the comment brings the count straight back.
	require.NoError(t, commentRepo.Delete(comment.ID))

	page, err = postRepo.VisiblePage(now, 1)
	require.NoError(t, err)
	require.EqualValues(t, 0, page.Posts[0].CommentCount)
}

func TestVisiblePageOrderedByPubDateDesc(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepo(db)

	author := newTestUser(t, db, "author")
	now := time.Now()

	createTestPost(t, db, testPost{author: author, pubDate: now.Add(-3 * time.Hour), published: true, title: "oldest"})
	createTestPost(t, db, testPost{author: author, pubDate: now.Add(-time.Hour), published: true, title: "newest"})
	createTestPost(t, db, testPost{author: author, pubDate: now.Add(-2 * time.Hour), published: true, title: "middle"})

	page, err := repo.VisiblePage(now, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 3)
	require.Equal(t, "newest", page.Posts[0].Title)
	require.Equal(t, "middle", page.Posts[1].Title)
	require.Equal(t, "oldest", page.Posts[2].Title)
}

func TestCommentRepoFindByPostOldestFirst(t *testing.T) {
	db := newTestDB(t)
	commentRepo := NewCommentRepo(db)

	author := newTestUser(t, db, "author")
	now := time.Now()
	post := createTestPost(t, db, testPost{author: author, pubDate: now.Add(-time.Hour), published: true})

	first := &models.Comment{Text: "first", PostID: post.ID, AuthorID: author.ID, CreatedAt: now.Add(-2 * time.Minute)}
	second := &models.Comment{Text: "second", PostID: post.ID, AuthorID: author.ID, CreatedAt: now.Add(-time.Minute)}
	require.NoError(t, commentRepo.Add(second))
	require.NoError(t, commentRepo.Add(first))

	comments, err := commentRepo.FindByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "first", comments[0].Text)
	require.Equal(t, "second", comments[1].Text)

	count, err := commentRepo.CountForPost(post.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestCommentRepoFindByIDForPostScoping(t *testing.T) {
	db := newTestDB(t)
	commentRepo := NewCommentRepo(db)

	author := newTestUser(t, db, "author")
	now := time.Now()
	postA := createTestPost(t, db, testPost{author: author, pubDate: now.Add(-time.Hour), published: true, title: "a"})
	postB := createTestPost(t, db, testPost{author: author, pubDate: now.Add(-time.Hour), published: true, title: "b"})

	comment := &models.Comment{Text: "on a", PostID: postA.ID, AuthorID: author.ID}
	require.NoError(t, commentRepo.Add(comment))

	found, err := commentRepo.FindByIDForPost(comment.ID, postA.ID)
	require.NoError(t, err)
	require.Equal(t, comment.ID, found.ID)

	// The same comment ID through another post's URL is a not-found.
	_, err = commentRepo.FindByIDForPost(comment.ID, postB.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
