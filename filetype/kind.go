package filetype

type Kind int8

const (
	KindUnknown     Kind = 0
	KindRegular     Kind = 1
	KindDirectory   Kind = 2
	KindSymlink     Kind = 3
	KindBlockDevice Kind = 4
	KindCharDevice  Kind = 5
	KindFifo        Kind = 6
	KindSocket      Kind = 7
)

var kinds = []string{
	"unknown",
	"regular",
	"directory",
	"symlink",
	"block device",
	"character device",
	"fifo",
	"socket",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kinds) {
		return kinds[KindUnknown]
	}
	return kinds[k]
}
