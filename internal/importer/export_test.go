package importer

var ParseAmount = parseAmount
