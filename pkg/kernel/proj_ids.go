package kernel

import "strconv"

type JobPostingID int64

func NewJobPostingID(id int64) JobPostingID { return JobPostingID(id) }
func (r JobPostingID) Int64() int64         { return int64(r) }
func (r JobPostingID) String() string       { return strconv.FormatInt(int64(r), 10) }
func (r JobPostingID) IsEmpty() bool        { return r <= 0 }

type ApplicationID int64

func NewApplicationID(id int64) ApplicationID { return ApplicationID(id) }
func (r ApplicationID) Int64() int64          { return int64(r) }
func (r ApplicationID) String() string        { return strconv.FormatInt(int64(r), 10) }
func (r ApplicationID) IsEmpty() bool         { return r <= 0 }

type JobCategoryID int64

func NewJobCategoryID(id int64) JobCategoryID { return JobCategoryID(id) }
func (r JobCategoryID) Int64() int64          { return int64(r) }
func (r JobCategoryID) String() string        { return strconv.FormatInt(int64(r), 10) }
func (r JobCategoryID) IsEmpty() bool         { return r <= 0 }

type BookmarkID int64

func NewBookmarkID(id int64) BookmarkID { return BookmarkID(id) }
func (r BookmarkID) Int64() int64       { return int64(r) }
func (r BookmarkID) String() string     { return strconv.FormatInt(int64(r), 10) }
func (r BookmarkID) IsEmpty() bool      { return r <= 0 }
