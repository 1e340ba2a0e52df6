package typemap_test

import (
	"fmt"
	"reflect"

	"github.com/jonwraymond/extend/typemap"
)

type theme struct {
	Name string
}

type locale struct {
	Tag string
}

func ExampleTypeMap() {
	m := typemap.New()

	m.Set(reflect.TypeFor[theme](), theme{Name: "dark"})
	m.Set(reflect.TypeFor[locale](), locale{Tag: "en-US"})

	fmt.Println("entries:", m.Len())

	t, ok := typemap.Value[theme](m, reflect.TypeFor[theme]())
	fmt.Println("theme:", t.Name, ok)

	m.Delete(reflect.TypeFor[locale]())
	fmt.Println("locale present:", m.Contains(reflect.TypeFor[locale]()))
	// Output:
	// entries: 2
	// theme: dark true
	// locale present: false
}

func ExampleValue() {
	var m typemap.TypeMap // zero value is ready for use

	if _, ok := typemap.Value[theme](&m, reflect.TypeFor[theme]()); !ok {
		fmt.Println("no theme stored")
	}
	// Output:
	// no theme stored
}
