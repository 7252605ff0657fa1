// Package schema defines the shop records and their flat-file format.
//
// # Overview
//
// Each collection lives in its own text file, one record per line, fields
// separated by ';'. The layout is shared with earlier versions of the shop
// program, so field order and separators are fixed:
//
//	clientes.txt   name;taxId;phone
//	veiculos.txt   plate;model;year;ownerTaxId
//	ordens.txt     id;plate;entryDate;description;statusNumber
//
// Example files:
//
//	Ana Silva;111.111.111-11;(11) 99999-0000
//
//	ABC1234;Gol;2015;111.111.111-11
//	XYZ9876;Uno;2009;
//
//	1;ABC1234;10/05/2024;brake noise;2
//	2;;11/05/2024;oil change;4
//
// # References
//
// Vehicles point at their owner by tax id and orders point at their vehicle by
// plate. An empty reference field means the referenced record is gone; package
// shop clears these fields when it deletes a client or a vehicle.
//
// # Reading
//
// Lines that do not parse are reported as *LineError values and skipped, the
// rest of the file is still loaded. A missing file is an empty collection.
// Older files wrote owner-less vehicles with a doubled separator
// ("XYZ9876;Uno;2009;;"); the reader accepts that form.
//
// # Writing
//
// Writers always rewrite the whole file through atomicfile.WriteFile, so a
// failed write leaves the previous contents in place.
package schema
