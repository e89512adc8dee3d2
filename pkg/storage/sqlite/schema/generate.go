package schema

//go:generate jet -source=sqlite -dsn=../../../../tapas.sqlite -path=./gen
