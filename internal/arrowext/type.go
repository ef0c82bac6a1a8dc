package arrowext

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/roach88/y2km/internal/y2km"
)

// serializedEpoch is the extension metadata written with every column. It
// pins the encoding so a future epoch change cannot be misread.
const serializedEpoch = "epoch=2000-01"

// nullStr is how ValueStr renders a missing element.
const nullStr = "(null)"

// MonthType is the Arrow extension type for y2km columns.
type MonthType struct {
	arrow.ExtensionBase
}

// NewMonthType returns the y2km extension type over int16 storage.
func NewMonthType() *MonthType {
	return &MonthType{ExtensionBase: arrow.ExtensionBase{Storage: arrow.PrimitiveTypes.Int16}}
}

// ArrayType implements arrow.ExtensionType.
func (*MonthType) ArrayType() reflect.Type { return reflect.TypeOf(MonthArray{}) }

// ExtensionName implements arrow.ExtensionType.
func (*MonthType) ExtensionName() string { return y2km.TypeName }

func (t *MonthType) String() string { return fmt.Sprintf("extension<%s>", t.ExtensionName()) }

// Serialize implements arrow.ExtensionType.
func (*MonthType) Serialize() string { return serializedEpoch }

// Deserialize implements arrow.ExtensionType. Empty metadata is accepted for
// columns written by hosts that drop it.
func (*MonthType) Deserialize(storageType arrow.DataType, data string) (arrow.ExtensionType, error) {
	if !arrow.TypeEqual(storageType, arrow.PrimitiveTypes.Int16) {
		return nil, fmt.Errorf("invalid storage type for %s: %s", y2km.TypeName, storageType)
	}
	if data != "" && data != serializedEpoch {
		return nil, fmt.Errorf("unsupported %s metadata %q", y2km.TypeName, data)
	}
	return NewMonthType(), nil
}

// ExtensionEquals implements arrow.ExtensionType.
func (t *MonthType) ExtensionEquals(other arrow.ExtensionType) bool {
	return t.ExtensionName() == other.ExtensionName() && t.Serialize() == other.Serialize()
}

// MonthArray is an Arrow array of y2km months.
type MonthArray struct {
	array.ExtensionArrayBase
}

// Month returns element i. Check IsNull first.
func (a *MonthArray) Month(i int) y2km.Month {
	return y2km.Month(a.Storage().(*array.Int16).Value(i))
}

// ValueStr renders element i as YYYY-MM.
func (a *MonthArray) ValueStr(i int) string {
	if a.IsNull(i) {
		return nullStr
	}
	return a.Month(i).String()
}

func (a *MonthArray) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.ValueStr(i))
	}
	b.WriteByte(']')
	return b.String()
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register makes the y2km type known to Arrow's extension registry, so IPC
// readers reconstruct MonthArrays. Safe to call repeatedly.
func Register() error {
	registerOnce.Do(func() {
		if arrow.GetExtensionType(y2km.TypeName) != nil {
			return
		}
		registerErr = arrow.RegisterExtensionType(NewMonthType())
	})
	return registerErr
}
